package symbol

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol identifies a terminal, a non-terminal, or the end-of-input marker.
// The highest bit holds the kind, the next bit marks the end-of-input marker, and
// the rest is a serial number in declaration order.
type Symbol uint16

func (s Symbol) String() string {
	kind, isEOF, num := s.describe()
	var prefix string
	switch {
	case isEOF:
		prefix = "e"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	case kind == symbolKindTerminal:
		prefix = "t"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskSubKindPart = uint16(0x4000) // 0100 0000 0000 0000
	maskNonEOF      = uint16(0x0000) // 0000 0000 0000 0000
	maskEOF         = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumEOF = uint16(0x0001) // 0000 0000 0000 0001

	SymbolNil = Symbol(0)                                     // 0000 0000 0000 0000
	SymbolEOF = Symbol(maskTerminal | maskEOF | symbolNumEOF) // 1100 0000 0000 0001: The EOF symbol is treated as a terminal symbol.

	// The name contains `<` and `>` so that it reads as a marker rather than an ordinary symbol.
	// Declaring it as a symbol is rejected.
	EOFText = "<eof>"

	nonTerminalNumMin = SymbolNum(1)
	terminalNumMin    = SymbolNum(2)           // The number 1 is used by the EOF symbol.
	symbolNumMax      = SymbolNum(0xffff) >> 2 // 0011 1111 1111 1111
)

func newSymbol(kind symbolKind, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}

	kindMask := maskNonTerminal
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	return Symbol(kindMask | maskNonEOF | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	_, _, num := s.describe()
	return num
}

func (s Symbol) IsNil() bool {
	_, _, num := s.describe()
	return num == 0
}

func (s Symbol) IsEOF() bool {
	if s.IsNil() {
		return false
	}
	_, isEOF, _ := s.describe()
	return isEOF
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _ := s.describe()
	return kind == symbolKindNonTerminal
}

func (s Symbol) IsTerminal() bool {
	if s.IsNil() {
		return false
	}
	return !s.IsNonTerminal()
}

func (s Symbol) describe() (symbolKind, bool, SymbolNum) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	isEOF := kind == symbolKindTerminal && uint16(s)&maskSubKindPart > 0
	num := SymbolNum(uint16(s) & maskNumberPart)
	return kind, isEOF, num
}

// SymbolTable keeps the terminal and non-terminal vocabularies of a grammar. The two
// vocabularies are disjoint; the table refuses to register a text under both kinds.
type SymbolTable struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	nonTermTexts []string
	termTexts    []string
	nonTermNum   SymbolNum
	termNum      SymbolNum
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			EOFText: SymbolEOF,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF: EOFText,
		},
		termTexts: []string{
			"",      // Nil
			EOFText, // EOF
		},
		nonTermTexts: []string{
			"", // Nil
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// KindConflictError reports a text that is already registered as the other kind of symbol.
type KindConflictError struct {
	Text       string
	Registered Symbol
}

func (e *KindConflictError) Error() string {
	kind, _, _ := e.Registered.describe()
	return fmt.Sprintf("%v is already registered as a %v symbol", e.Text, kind)
}

// ReservedTextError reports a text that cannot name a symbol.
type ReservedTextError struct {
	Text string
}

func (e *ReservedTextError) Error() string {
	if e.Text == "" {
		return "a symbol name must not be empty"
	}
	return fmt.Sprintf("%v is reserved", e.Text)
}

func checkText(text string) error {
	if text == "" || text == EOFText {
		return &ReservedTextError{Text: text}
	}
	if _, ok := ToMetaToken(text); ok {
		return &ReservedTextError{Text: text}
	}
	return nil
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	if err := checkText(text); err != nil {
		return SymbolNil, err
	}
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, &KindConflictError{Text: text, Registered: sym}
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, w.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	w.nonTermNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.nonTermTexts = append(w.nonTermTexts, text)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterTerminalSymbol(text string) (Symbol, error) {
	if err := checkText(text); err != nil {
		return SymbolNil, err
	}
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsTerminal() {
			return SymbolNil, &KindConflictError{Text: text, Registered: sym}
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, w.termNum)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.termTexts = append(w.termTexts, text)
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	text, ok := r.sym2Text[sym]
	return text, ok
}

// TerminalSymbols returns the declared terminals in declaration order. The EOF symbol is not included.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum.Int()-terminalNumMin.Int())
	for sym := range r.sym2Text {
		if !sym.IsTerminal() || sym.IsEOF() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func (r *SymbolTableReader) TerminalTexts() []string {
	return r.termTexts[terminalNumMin:]
}

// NonTerminalSymbols returns the declared non-terminals in declaration order.
func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.nonTermNum.Int()-nonTerminalNumMin.Int())
	for sym := range r.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

func (r *SymbolTableReader) NonTerminalTexts() []string {
	return r.nonTermTexts[nonTerminalNumMin:]
}
