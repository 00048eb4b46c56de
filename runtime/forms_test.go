package runtime

import (
	"errors"
	"testing"

	"github.com/panyam/owl/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSpecialForm(t *testing.T) {
	for _, name := range []string{"def", "do", "fun", "if", "set"} {
		assert.True(t, IsSpecialForm(name), name)
	}
	assert.False(t, IsSpecialForm("+"))
	assert.False(t, IsSpecialForm("lambda"))
}

func TestForms_Do(t *testing.T) {
	assertValue(t, decl.NumValue(3), evalString(t, "(do 1 2 3)"))
	assert.True(t, evalString(t, "(do)").IsNone())
	assertValue(t, decl.NumValue(2), evalString(t, "{ (def a 1) (+ a 1) }"))
}

func TestForms_IfTruthiness(t *testing.T) {
	tests := []struct {
		cond   string
		branch float64
	}{
		{"#t", 1},
		{"#f", 2},
		{"0", 2},
		{"1", 1},
		{"-1", 1},
		{"nothing", 2},
		{`""`, 1},
		{`"x"`, 1},
		{"()", 1},
		{"(= 1 1)", 1},
		{"(= 1 2)", 2},
		{"(- 2 2)", 2},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			code := "(if " + tt.cond + " 1 2)"
			assertValue(t, decl.NumValue(tt.branch), evalString(t, code))
		})
	}
}

func TestForms_IfWithoutElse(t *testing.T) {
	assert.True(t, evalString(t, "(if #f 1)").IsNone())
	assertValue(t, decl.NumValue(1), evalString(t, "(if #t 1)"))
}

func TestForms_IfOnlyEvaluatesChosenBranch(t *testing.T) {
	ev := newTestEvaluator()
	env := decl.NewEnv(nil)
	runScript(t, ev, env, "(def a 0) (if #t (set a 1) (set a 2))")
	assertValue(t, decl.NumValue(1), env.Get("a"))
}

func TestForms_IfMissingArguments(t *testing.T) {
	ev := newTestEvaluator()
	for _, code := range []string{"(if)", "(if #t)"} {
		_, err := ev.Eval(decl.NewEnv(nil), code)
		require.Error(t, err, code)
		var formErr *FormError
		require.True(t, errors.As(err, &formErr), code)
		assert.Equal(t, "if", formErr.Form)
		assert.True(t, errors.Is(err, ErrMissingArguments))
	}
}

func TestForms_DefSetGet(t *testing.T) {
	ev := newTestEvaluator()
	env := decl.NewEnv(nil)

	v, err := ev.Eval(env, "(def a 1)")
	require.NoError(t, err)
	assertValue(t, decl.NumValue(1), v)

	v, err = ev.Eval(env, "a")
	require.NoError(t, err)
	assertValue(t, decl.NumValue(1), v)

	v, err = ev.Eval(env, "(set a 2)")
	require.NoError(t, err)
	assertValue(t, decl.NumValue(2), v)

	v, err = ev.Eval(env, "a")
	require.NoError(t, err)
	assertValue(t, decl.NumValue(2), v)
}

func TestForms_DefWithoutValue(t *testing.T) {
	ev := newTestEvaluator()
	env := decl.NewEnv(nil)
	v, err := ev.Eval(env, "(def a)")
	require.NoError(t, err)
	assert.True(t, v.IsNone())
	assert.True(t, env.Has("a"))
}

func TestForms_DefShadowsAndSetRewritesOuter(t *testing.T) {
	ev := newTestEvaluator()
	outer := decl.NewEnv(nil)
	runScript(t, ev, outer, "(def a 1) (def b 1)")

	inner := decl.NewEnv(outer)
	runScript(t, ev, inner, "(def a 10) (set b 20)")

	assertValue(t, decl.NumValue(1), outer.Get("a"))
	assertValue(t, decl.NumValue(10), inner.Get("a"))
	assertValue(t, decl.NumValue(20), outer.Get("b"))
	assert.False(t, inner.HasLocal("b"))
}

func TestForms_SetUnbound(t *testing.T) {
	ev := newTestEvaluator()
	env := decl.NewEnv(nil)
	_, err := ev.Eval(env, "(set missing 1)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnboundSymbol))
	assert.False(t, env.Has("missing"))
}

func TestForms_NonSymbolTargets(t *testing.T) {
	ev := newTestEvaluator()
	for _, code := range []string{"(def 1 2)", `(set "a" 2)`, "(fun (f) 1)"} {
		_, err := ev.Eval(decl.NewEnv(nil), code)
		assert.True(t, errors.Is(err, ErrNotASymbol), code)
	}
	for _, code := range []string{"(def)", "(set)", "(fun)"} {
		_, err := ev.Eval(decl.NewEnv(nil), code)
		assert.True(t, errors.Is(err, ErrMissingArguments), code)
	}
}

func TestForms_FatalPanic(t *testing.T) {
	ev := newTestEvaluator(WithFatalPolicy(FatalPanic))
	assert.Panics(t, func() {
		ev.Eval(decl.NewEnv(nil), "(set missing 1)")
	})
	assert.Panics(t, func() {
		ev.Eval(decl.NewEnv(nil), "(if)")
	})
	assert.NotPanics(t, func() {
		ev.Eval(decl.NewEnv(nil), "(def a 1)")
	})
}

func TestForms_Fun(t *testing.T) {
	ev := newTestEvaluator()
	env := decl.NewEnv(nil)

	v, err := ev.Eval(env, "(fun f (x) x)")
	require.NoError(t, err)
	assert.True(t, v.IsNone())
	assert.False(t, env.Has("f"), "fun does not bind anything")

	runScript(t, ev, env, "(def f 1)")
	_, err = ev.Eval(env, "(fun f (x) x)")
	assert.True(t, errors.Is(err, ErrAlreadyBound))

	// only the innermost scope counts
	_, err = ev.Eval(decl.NewEnv(env), "(fun f (x) x)")
	assert.NoError(t, err)
}

func TestFormError_Message(t *testing.T) {
	err := formError("set", []decl.Value{decl.SymValue("a"), decl.NumValue(1)}, ErrUnboundSymbol)
	assert.Equal(t, "set: symbol is not bound in (set a 1)", err.Error())
	assert.Equal(t, ErrUnboundSymbol, errors.Unwrap(err))
}
