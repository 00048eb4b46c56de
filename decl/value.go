package decl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gfn "github.com/panyam/goutils/fn"
	"golang.org/x/text/unicode/norm"
)

// Func bundles a parameter specification, an unevaluated body and the
// environment it was defined in. Nothing in the evaluator constructs one yet
// (the fun form is a stub) but hosts can bind them and they self-evaluate.
type Func struct {
	Params Value
	Body   Value
	Env    *Env
}

// Value wraps a Go value with its variant tag.
type Value struct {
	Type  *Type
	Value any // The underlying Go value
}

// None returns the value denoting absence.
func None() Value {
	return Value{Type: NoneType}
}

// Helpers to create specific simple values
func NumValue(val float64) Value {
	return Value{Type: NumType, Value: val}
}

func StrValue(val string) Value {
	return Value{Type: StrType, Value: val}
}

// SymValue creates a symbol.  Names are NFC normalized so that composed and
// decomposed spellings of an identifier resolve to the same binding.
func SymValue(name string) Value {
	return Value{Type: SymType, Value: norm.NFC.String(name)}
}

func AtomValue(name string) Value {
	return Value{Type: AtomType, Value: name}
}

func BoolValue(val bool) Value {
	return Value{Type: BoolType, Value: val}
}

// ListValue creates a list holding the given items in order.  A call with no
// items yields the empty list (which is not None).
func ListValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Type: ListType, Value: items}
}

func FuncValue(f *Func) Value {
	return Value{Type: FuncType, Value: f}
}

// IsNone returns true for the None variant as well as for the zero Value.
func (r Value) IsNone() bool {
	return r.Type == nil || r.Type == NoneType
}

func (r Value) Is(t *Type) bool {
	if r.IsNone() {
		return t == NoneType
	}
	return r.Type.Equals(t)
}

// --- Custom getter methods

func (r Value) GetNum() (float64, error) {
	if r.Type != NumType {
		return 0, fmt.Errorf("type mismatch: cannot get Num, value is type %s", r.Type.String())
	}
	val, ok := r.Value.(float64)
	if !ok {
		return 0, fmt.Errorf("internal error: Num value is not Go float64 (%T)", r.Value)
	}
	return val, nil
}

func (r Value) GetString() (string, error) {
	if r.Type != StrType {
		return "", fmt.Errorf("type mismatch: cannot get Str, value is type %s", r.Type.String())
	}
	val, ok := r.Value.(string)
	if !ok {
		return "", fmt.Errorf("internal error: Str value is not Go string (%T)", r.Value)
	}
	return val, nil
}

func (r Value) GetSymbol() (string, error) {
	if r.Type != SymType {
		return "", fmt.Errorf("type mismatch: cannot get Sym, value is type %s", r.Type.String())
	}
	val, ok := r.Value.(string)
	if !ok {
		return "", fmt.Errorf("internal error: Sym value is not Go string (%T)", r.Value)
	}
	return val, nil
}

func (r Value) GetBool() (bool, error) {
	if r.Type != BoolType {
		return false, fmt.Errorf("type mismatch: cannot get Bool, value is type %s", r.Type.String())
	}
	val, ok := r.Value.(bool)
	if !ok {
		return false, fmt.Errorf("internal error: Bool value is not Go bool (%T)", r.Value)
	}
	return val, nil
}

func (r Value) GetList() ([]Value, error) {
	if r.Type != ListType {
		return nil, fmt.Errorf("type mismatch: cannot get List, value is type %s", r.Type.String())
	}
	if r.Value == nil {
		return nil, nil
	}
	val, ok := r.Value.([]Value)
	if !ok {
		return nil, fmt.Errorf("internal error: List value is not Go []Value (%T)", r.Value)
	}
	return val, nil
}

func (r Value) GetFunc() (*Func, error) {
	if r.Type != FuncType {
		return nil, fmt.Errorf("type mismatch: cannot get Func, value is type %s", r.Type.String())
	}
	val, ok := r.Value.(*Func)
	if !ok || val == nil {
		return nil, fmt.Errorf("internal error: Func value is not *Func (%T)", r.Value)
	}
	return val, nil
}

// Items returns the list contents or nil for any non list value.
func (r Value) Items() []Value {
	items, _ := r.GetList()
	return items
}

// AsNum is the raw numeric coercion: the number for a Num, 0 for anything else.
// No evaluation takes place.
func (r Value) AsNum() float64 {
	n, err := r.GetNum()
	if err != nil {
		return 0.0
	}
	return n
}

// IsTruthy reports whether the value selects the then-branch of an if.
// None, false and 0 are falsy.
func (r Value) IsTruthy() bool {
	switch {
	case r.IsNone():
		return false
	case r.Type == BoolType:
		b, _ := r.GetBool()
		return b
	case r.Type == NumType:
		return r.AsNum() != 0.0
	}
	return true
}

// Equals compares two values structurally.  Lists compare element-wise and
// functions compare by identity.
func (r Value) Equals(other Value) bool {
	if r.IsNone() || other.IsNone() {
		return r.IsNone() && other.IsNone()
	}
	if !r.Type.Equals(other.Type) {
		return false
	}
	switch r.Type {
	case ListType:
		a, b := r.Items(), other.Items()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equals(b[i]) {
				return false
			}
		}
		return true
	case FuncType:
		return r.Value == other.Value
	}
	return r.Value == other.Value
}

// Clone returns a copy that shares no list storage with the receiver.
func (r Value) Clone() Value {
	if r.Type != ListType {
		return r
	}
	items := r.Items()
	out := make([]Value, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return ListValue(out...)
}

// TextOf returns the raw text of a value as used for operator lookup: the
// name of a symbol or atom, the contents of a string, or the printed form of
// anything else.
func (r Value) TextOf() string {
	switch r.Type {
	case SymType, StrType, AtomType:
		return r.Value.(string)
	}
	return r.String()
}

// String renders the value as source text.
func (r Value) String() string {
	if r.IsNone() {
		return "nil"
	}
	switch r.Type {
	case NumType:
		return FormatNum(r.AsNum())
	case BoolType:
		if b, _ := r.GetBool(); b {
			return "#t"
		}
		return "#f"
	case StrType:
		return `"` + r.Value.(string) + `"`
	case SymType, AtomType:
		return r.Value.(string)
	case ListType:
		return "(" + strings.Join(gfn.Map(r.Items(), func(v Value) string { return v.String() }), " ") + ")"
	case FuncType:
		f, err := r.GetFunc()
		if err != nil {
			return "<fun>"
		}
		return fmt.Sprintf("<fun %s>", f.Params.String())
	}
	return fmt.Sprintf("<%s %v>", r.Type.String(), r.Value)
}

// FormatNum prints a float in its shortest round-tripping form.
func FormatNum(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "+Inf"
	case math.IsInf(n, -1):
		return "-Inf"
	case math.IsNaN(n):
		return "NaN"
	case n == math.Trunc(n) && math.Abs(n) < 1e15:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
