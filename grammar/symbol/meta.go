package symbol

// MetaToken is one of the five reserved tokens that give a right-hand side its structure.
// They are spelled with a leading backslash so that they never collide with a terminal
// written with the same printable character.
type MetaToken string

const (
	MetaTokenNil         = MetaToken("")
	MetaTokenGroupOpen   = MetaToken(`\(`)
	MetaTokenGroupClose  = MetaToken(`\)`)
	MetaTokenRepeatOpen  = MetaToken(`\{`)
	MetaTokenRepeatClose = MetaToken(`\}`)
	MetaTokenAlternation = MetaToken(`\|`)
)

var metaTokens = map[string]MetaToken{
	string(MetaTokenGroupOpen):   MetaTokenGroupOpen,
	string(MetaTokenGroupClose):  MetaTokenGroupClose,
	string(MetaTokenRepeatOpen):  MetaTokenRepeatOpen,
	string(MetaTokenRepeatClose): MetaTokenRepeatClose,
	string(MetaTokenAlternation): MetaTokenAlternation,
}

func ToMetaToken(text string) (MetaToken, bool) {
	t, ok := metaTokens[text]
	return t, ok
}

func (t MetaToken) String() string {
	return string(t)
}

// Display returns the token without its escape, e.g. `(` for `\(`.
func (t MetaToken) Display() string {
	if t == MetaTokenNil {
		return ""
	}
	return string(t)[1:]
}

// Closer returns the token closing a bracket opened by t.
func (t MetaToken) Closer() MetaToken {
	switch t {
	case MetaTokenGroupOpen:
		return MetaTokenGroupClose
	case MetaTokenRepeatOpen:
		return MetaTokenRepeatClose
	}
	return MetaTokenNil
}

func (t MetaToken) IsCloser() bool {
	return t == MetaTokenGroupClose || t == MetaTokenRepeatClose
}
