package parser

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/panyam/owl/decl"
)

// Ensure EOF is defined
const eof = 0

// cursor is a position in the source.  Line and col are 1-based, col counts
// runes.
type cursor struct {
	pos  int
	line int
	col  int
}

var startCursor = cursor{pos: 0, line: 1, col: 1}

// Reader parses expressions one at a time from a source string.  The cursor
// advances across calls so successive Reads walk through a script; the same
// source must be passed to every call until Reset.
type Reader struct {
	cur cursor
}

// NewReader creates a reader positioned at the start of its input.
func NewReader() *Reader {
	return &Reader{cur: startCursor}
}

// Reset rewinds the cursor so the reader can be used on new text.
func (r *Reader) Reset() {
	r.cur = startCursor
}

// Pos returns the current byte offset.
func (r *Reader) Pos() int {
	return r.cur.pos
}

// Position returns the current 1-based line and column.
func (r *Reader) Position() (line int, col int) {
	return r.cur.line, r.cur.col
}

func (r *Reader) AtEOF(src string) bool {
	return r.cur.pos >= len(src)
}

// --- Rune Reading Helpers (with line/col tracking) ---

func (r *Reader) peek(src string) rune {
	if r.AtEOF(src) {
		return eof
	}
	ch, _ := utf8.DecodeRuneInString(src[r.cur.pos:])
	return ch
}

func (r *Reader) advance(src string) {
	if r.AtEOF(src) {
		return
	}
	ch, width := utf8.DecodeRuneInString(src[r.cur.pos:])
	r.cur.pos += width
	if ch == '\n' {
		r.cur.line++
		r.cur.col = 1
	} else {
		r.cur.col++
	}
}

// SkipWhitespace moves the cursor past any run of whitespace.
func (r *Reader) SkipWhitespace(src string) {
	for !r.AtEOF(src) && unicode.IsSpace(r.peek(src)) {
		r.advance(src)
	}
}

func (r *Reader) fail(kind ErrorKind, at cursor, msg string) *ReaderError {
	return &ReaderError{Kind: kind, Pos: at.pos, Line: at.line, Col: at.col, Msg: msg}
}

func isDelimiter(ch rune) bool {
	switch ch {
	case '(', ')', '[', ']', '{', '}', '<', '>', '\'':
		return true
	}
	return false
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// atBoundary reports whether the cursor sits where a token may end.
func (r *Reader) atBoundary(src string) bool {
	ch := r.peek(src)
	return r.AtEOF(src) || unicode.IsSpace(ch) || isDelimiter(ch)
}

// Read skips leading whitespace and parses the next expression.  Productions
// are tried in a fixed order; the first to succeed wins.  On error the cursor
// is left where the call started.
func (r *Reader) Read(src string) (decl.Value, error) {
	start := r.cur
	r.SkipWhitespace(src)
	if r.AtEOF(src) {
		err := r.fail(Generic, r.cur, "unexpected end of input")
		r.cur = start
		return decl.None(), err
	}
	switch ch := r.peek(src); ch {
	case ')', '}':
		kind := UnbalancedParenthesis
		if ch == '}' {
			kind = UnbalancedBraces
		}
		err := r.fail(kind, r.cur, fmt.Sprintf("unexpected %q", ch))
		r.cur = start
		return decl.None(), err
	}
	v, err := r.readForm(src)
	if err != nil {
		r.cur = start
		return decl.None(), err
	}
	return v, nil
}

// ReadAll reads every remaining top-level expression in src.  On error the
// forms read so far are returned along with it.
func (r *Reader) ReadAll(src string) (out []decl.Value, err error) {
	for {
		r.SkipWhitespace(src)
		if r.AtEOF(src) {
			return out, nil
		}
		v, err := r.Read(src)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

// Parse reads the first expression in src.
func Parse(src string) (decl.Value, error) {
	return NewReader().Read(src)
}

// ParseAll reads every expression in src.
func ParseAll(src string) ([]decl.Value, error) {
	return NewReader().ReadAll(src)
}

func (r *Reader) readForm(src string) (decl.Value, error) {
	productions := [...]func(string) (decl.Value, error){
		r.readNumber,
		r.readBoolean,
		r.readString,
		r.readList,
		r.readDoBlock,
		r.readFunctionCall,
		r.readSymbol,
	}
	for _, production := range productions {
		v, err := production(src)
		if err == nil {
			return v, nil
		}
		if !fallsThrough(err) {
			return decl.None(), err
		}
	}
	return decl.None(), r.fail(Generic, r.cur, fmt.Sprintf("unexpected %q", r.peek(src)))
}

// readNumber accepts an optional '-', an optional leading '.', then digits
// with at most one '.' in total.
func (r *Reader) readNumber(src string) (decl.Value, error) {
	start := r.cur
	isReal := false

	if r.peek(src) == '-' {
		r.advance(src)
	}
	if r.peek(src) == '.' {
		r.advance(src)
		isReal = true
	}
	if !isDigit(r.peek(src)) {
		r.cur = start
		return decl.None(), r.fail(NotANumber, start, "")
	}

	for !r.AtEOF(src) {
		ch := r.peek(src)
		if ch == '.' {
			if isReal {
				r.cur = start
				return decl.None(), r.fail(InvalidNumber, start, "too many dots")
			}
			isReal = true
		} else if !isDigit(ch) {
			break
		}
		r.advance(src)
	}

	text := src[start.pos:r.cur.pos]
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		r.cur = start
		return decl.None(), r.fail(InvalidNumber, start, err.Error())
	}
	return decl.NumValue(n), nil
}

func (r *Reader) readBoolean(src string) (decl.Value, error) {
	start := r.cur
	if r.peek(src) != '#' {
		return decl.None(), r.fail(NotABoolean, start, "")
	}
	r.advance(src)

	var val bool
	switch r.peek(src) {
	case 't', 'T':
		val = true
	case 'f', 'F':
		val = false
	default:
		r.cur = start
		return decl.None(), r.fail(NotABoolean, start, "")
	}
	r.advance(src)

	if !r.atBoundary(src) {
		r.cur = start
		return decl.None(), r.fail(NotABoolean, start, "")
	}
	return decl.BoolValue(val), nil
}

// readString returns the raw text between double quotes.  There are no
// escape sequences.
func (r *Reader) readString(src string) (decl.Value, error) {
	start := r.cur
	if r.peek(src) != '"' {
		return decl.None(), r.fail(NotAString, start, "")
	}
	r.advance(src)
	begin := r.cur.pos
	for {
		if r.AtEOF(src) {
			r.cur = start
			err := r.fail(UnterminatedString, start, "")
			err.Incomplete = true
			return decl.None(), err
		}
		if r.peek(src) == '"' {
			text := src[begin:r.cur.pos]
			r.advance(src)
			return decl.StrValue(text), nil
		}
		r.advance(src)
	}
}

// readSequence reads expressions between open and close.  Running out of
// input or meeting the wrong closing delimiter fails with unbalanced.
func (r *Reader) readSequence(src string, open, close rune, notSeq, unbalanced ErrorKind) ([]decl.Value, error) {
	start := r.cur
	if r.peek(src) != open {
		return nil, r.fail(notSeq, start, "")
	}
	r.advance(src)

	items := []decl.Value{}
	for {
		r.SkipWhitespace(src)
		if r.AtEOF(src) {
			r.cur = start
			err := r.fail(unbalanced, start, "")
			err.Incomplete = true
			return nil, err
		}
		switch ch := r.peek(src); ch {
		case close:
			r.advance(src)
			return items, nil
		case ')', ']', '}':
			at := r.cur
			r.cur = start
			return nil, r.fail(unbalanced, start, fmt.Sprintf("unexpected %q at line %d, col %d", ch, at.line, at.col))
		}
		item, err := r.readForm(src)
		if err != nil {
			r.cur = start
			return nil, err
		}
		items = append(items, item)
	}
}

func (r *Reader) readList(src string) (decl.Value, error) {
	items, err := r.readSequence(src, '(', ')', NotAList, UnbalancedParenthesis)
	if err != nil {
		return decl.None(), err
	}
	return decl.ListValue(items...), nil
}

// readDoBlock reads { e1 e2 ... } as (do e1 e2 ...).
func (r *Reader) readDoBlock(src string) (decl.Value, error) {
	items, err := r.readSequence(src, '{', '}', NotAList, UnbalancedBraces)
	if err != nil {
		return decl.None(), err
	}
	return decl.ListValue(append([]decl.Value{decl.SymValue("do")}, items...)...), nil
}

// readFunctionCall reads sym(a b c) as (sym a b c).  The list must follow the
// symbol with no space in between.  Errors inside the argument list propagate
// just as they do for a plain list.
func (r *Reader) readFunctionCall(src string) (decl.Value, error) {
	start := r.cur
	sym, err := r.readSymbol(src)
	if err != nil || r.peek(src) != '(' {
		r.cur = start
		return decl.None(), r.fail(NotAFunctionCall, start, "")
	}
	args, err := r.readList(src)
	if err != nil {
		r.cur = start
		return decl.None(), err
	}
	return decl.ListValue(append([]decl.Value{sym}, args.Items()...)...), nil
}

func (r *Reader) readSymbol(src string) (decl.Value, error) {
	start := r.cur
	for !r.atBoundary(src) {
		r.advance(src)
	}
	if r.cur.pos == start.pos {
		return decl.None(), r.fail(InvalidSymbol, start, fmt.Sprintf("unexpected %q", r.peek(src)))
	}
	return decl.SymValue(src[start.pos:r.cur.pos]), nil
}
