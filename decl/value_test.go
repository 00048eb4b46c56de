package decl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTypeString(t *testing.T) {
	assert.Equal(t, "None", NoneType.String())
	assert.Equal(t, "Num", NumType.String())
	assert.Equal(t, "Str", StrType.String())
	assert.Equal(t, "Sym", SymType.String())
	assert.Equal(t, "Atom", AtomType.String())
	assert.Equal(t, "Bool", BoolType.String())
	assert.Equal(t, "List", ListType.String())
	assert.Equal(t, "Func", FuncType.String())

	var nilType *Type
	assert.Equal(t, "<nil_type>", nilType.String())
}

func TestValueTypeEquals(t *testing.T) {
	assert.True(t, NumType.Equals(NumType))
	assert.True(t, NumType.Equals(&Type{Tag: TypeTagNum, Name: "Number"}))
	assert.False(t, NumType.Equals(StrType))
	assert.False(t, NumType.Equals(nil))
	assert.False(t, SymType.Equals(AtomType))
}

func TestValueConstructors(t *testing.T) {
	n, err := NumValue(1.5).GetNum()
	require.NoError(t, err)
	assert.Equal(t, 1.5, n)

	s, err := StrValue("hi").GetString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	sym, err := SymValue("abc").GetSymbol()
	require.NoError(t, err)
	assert.Equal(t, "abc", sym)

	b, err := BoolValue(true).GetBool()
	require.NoError(t, err)
	assert.True(t, b)

	items, err := ListValue(NumValue(1), NumValue(2)).GetList()
	require.NoError(t, err)
	assert.Len(t, items, 2)

	f := &Func{Params: ListValue(SymValue("x")), Body: SymValue("x")}
	got, err := FuncValue(f).GetFunc()
	require.NoError(t, err)
	assert.Same(t, f, got)

	assert.True(t, AtomValue("ok").Is(AtomType))
}

func TestValueGetterMismatch(t *testing.T) {
	_, err := StrValue("1").GetNum()
	assert.ErrorContains(t, err, "cannot get Num, value is type Str")

	_, err = StrValue("a").GetSymbol()
	assert.Error(t, err)

	_, err = None().GetList()
	assert.Error(t, err)

	_, err = Value{}.GetBool()
	assert.ErrorContains(t, err, "<nil_type>")
}

func TestValueNone(t *testing.T) {
	assert.True(t, None().IsNone())
	assert.True(t, Value{}.IsNone())
	assert.True(t, Value{}.Is(NoneType))
	assert.False(t, ListValue().IsNone())
	assert.False(t, NumValue(0).IsNone())
	assert.Equal(t, "nil", None().String())
	assert.True(t, None().Equals(Value{}))
	assert.False(t, None().Equals(ListValue()))
}

func TestValueIsTruthy(t *testing.T) {
	falsy := []Value{None(), Value{}, BoolValue(false), NumValue(0), NumValue(math.Copysign(0, -1))}
	for _, v := range falsy {
		assert.False(t, v.IsTruthy(), v.String())
	}
	truthy := []Value{BoolValue(true), NumValue(1), NumValue(-0.5), StrValue(""), ListValue(), SymValue("x"), AtomValue("a")}
	for _, v := range truthy {
		assert.True(t, v.IsTruthy(), v.String())
	}
}

func TestValueAsNum(t *testing.T) {
	assert.Equal(t, 4.0, NumValue(4).AsNum())
	assert.Equal(t, 0.0, StrValue("4").AsNum())
	assert.Equal(t, 0.0, SymValue("x").AsNum())
	assert.Equal(t, 0.0, None().AsNum())
}

func TestValueEquals(t *testing.T) {
	assert.True(t, NumValue(1).Equals(NumValue(1)))
	assert.False(t, NumValue(1).Equals(StrValue("1")))
	assert.False(t, SymValue("a").Equals(StrValue("a")))
	assert.False(t, SymValue("a").Equals(AtomValue("a")))
	assert.True(t, ListValue(NumValue(1), ListValue(StrValue("x"))).Equals(ListValue(NumValue(1), ListValue(StrValue("x")))))
	assert.False(t, ListValue(NumValue(1)).Equals(ListValue(NumValue(1), NumValue(2))))
	assert.False(t, ListValue(NumValue(1)).Equals(ListValue(NumValue(2))))

	f1 := FuncValue(&Func{Params: ListValue(), Body: NumValue(1)})
	f2 := FuncValue(&Func{Params: ListValue(), Body: NumValue(1)})
	assert.True(t, f1.Equals(f1))
	assert.False(t, f1.Equals(f2))
}

func TestValueClone(t *testing.T) {
	inner := ListValue(NumValue(1))
	orig := ListValue(inner, StrValue("s"))
	clone := orig.Clone()
	require.True(t, orig.Equals(clone))

	clone.Items()[0].Items()[0] = NumValue(99)
	assert.Equal(t, 1.0, inner.Items()[0].AsNum(), "nested lists are copied too")
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{NumValue(3), "3"},
		{NumValue(-2.5), "-2.5"},
		{NumValue(1e21), "1e+21"},
		{NumValue(math.Inf(1)), "+Inf"},
		{NumValue(math.Inf(-1)), "-Inf"},
		{NumValue(math.NaN()), "NaN"},
		{BoolValue(true), "#t"},
		{BoolValue(false), "#f"},
		{StrValue("hi there"), `"hi there"`},
		{SymValue("x"), "x"},
		{AtomValue("ok"), "ok"},
		{ListValue(), "()"},
		{ListValue(SymValue("+"), NumValue(1), ListValue(StrValue("a"))), `(+ 1 ("a"))`},
		{FuncValue(&Func{Params: ListValue(SymValue("x"))}), "<fun (x)>"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestValueTextOf(t *testing.T) {
	assert.Equal(t, "+", SymValue("+").TextOf())
	assert.Equal(t, "+", StrValue("+").TextOf())
	assert.Equal(t, "ok", AtomValue("ok").TextOf())
	assert.Equal(t, "12", NumValue(12).TextOf())
	assert.Equal(t, "(a)", ListValue(SymValue("a")).TextOf())
}

func TestSymValueNormalizes(t *testing.T) {
	composed := SymValue("caf\u00e9")
	decomposed := SymValue("cafe\u0301")
	assert.True(t, composed.Equals(decomposed))

	// strings keep their exact contents
	assert.False(t, StrValue("caf\u00e9").Equals(StrValue("cafe\u0301")))
}
