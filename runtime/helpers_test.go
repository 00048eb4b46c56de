package runtime

import (
	"testing"

	"github.com/panyam/owl/decl"
	"github.com/stretchr/testify/require"
)

// evalString evaluates code in a fresh evaluator and environment.
func evalString(t *testing.T, code string, opts ...Option) decl.Value {
	t.Helper()
	ev := NewEvaluator(append([]Option{WithLogger(NopLogger())}, opts...)...)
	v, err := ev.Eval(decl.NewEnv(nil), code)
	require.NoError(t, err, "evaluating %s", code)
	return v
}

// runScript runs code as a script against env.
func runScript(t *testing.T, ev *Evaluator, env *decl.Env, code string) decl.Value {
	t.Helper()
	v, err := ev.EvalScript(env, code)
	require.NoError(t, err, "running %s", code)
	return v
}
