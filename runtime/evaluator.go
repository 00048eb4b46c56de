package runtime

import (
	"fmt"

	"github.com/panyam/owl/decl"
	"github.com/panyam/owl/parser"
)

// Evaluator interprets expression trees against an environment.  It holds
// per-session state (the recursion depth) so each session should have its
// own; the intrinsic registry can be shared through WithRegistry.
type Evaluator struct {
	registry    *Registry
	logger      Logger
	fatalPolicy FatalPolicy
	seedPolicy  SeedPolicy
	maxDepth    int
	depth       int
}

// NewEvaluator creates an evaluator with the base intrinsics registered.
func NewEvaluator(opts ...Option) *Evaluator {
	ev := &Evaluator{
		logger:   GetLogger(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(ev)
	}
	if ev.registry == nil {
		ev.registry = NewRegistry()
		ev.registry.AddBaseIntrinsics()
	}
	return ev
}

func (ev *Evaluator) Logger() Logger {
	return ev.logger
}

func (ev *Evaluator) FatalPolicy() FatalPolicy {
	return ev.fatalPolicy
}

func (ev *Evaluator) SeedPolicy() SeedPolicy {
	return ev.seedPolicy
}

func (ev *Evaluator) Registry() *Registry {
	return ev.registry
}

// --- Intrinsic Registry ---

// AddIntrinsic registers (or replaces) an intrinsic.  Call this while setting
// up a session, not from inside an evaluation.
func (ev *Evaluator) AddIntrinsic(intr Intrinsic) {
	ev.registry.Add(intr)
}

func (ev *Evaluator) IsIntrinsic(name string) bool {
	return ev.registry.Has(name)
}

func (ev *Evaluator) Intrinsic(name string) (Intrinsic, bool) {
	return ev.registry.Get(name)
}

func (ev *Evaluator) IntrinsicNames() []string {
	return ev.registry.Names()
}

// --- Evaluation ---

// Evaluate returns the value denoted by expr.  Literals evaluate to
// themselves, symbols to their binding (None when unbound) and non-empty
// lists dispatch on their head: special forms first, then intrinsics, and
// None for anything else.
func (ev *Evaluator) Evaluate(env *decl.Env, expr decl.Value) (decl.Value, error) {
	if ev.depth >= ev.maxDepth {
		return decl.None(), fmt.Errorf("%w (%d) at %s", ErrDepthExceeded, ev.maxDepth, expr.String())
	}
	ev.depth++
	defer func() { ev.depth-- }()

	if expr.IsNone() {
		return decl.None(), nil
	}
	switch expr.Type {
	case decl.SymType:
		name, _ := expr.GetSymbol()
		value, found := env.Lookup(name)
		if !found {
			ev.logger.Debug("unresolved symbol %q evaluates to nil", name)
		}
		return value.Clone(), nil
	case decl.ListType:
		items := expr.Items()
		if len(items) == 0 {
			return expr, nil
		}
		return ev.apply(env, items[0].TextOf(), items[1:])
	}
	return expr, nil
}

func (ev *Evaluator) apply(env *decl.Env, ident string, args []decl.Value) (decl.Value, error) {
	if result, handled, err := ev.evaluateSpecialForm(env, ident, args); handled {
		return result, err
	}
	if intr, ok := ev.registry.Get(ident); ok {
		return intr.Eval(ev, env, args)
	}
	ev.logger.Debug("unknown operator %q evaluates to nil", ident)
	return decl.None(), nil
}

// Eval reads one expression from code and evaluates it.  A parse error is
// logged and yields None; evaluation errors are returned.
func (ev *Evaluator) Eval(env *decl.Env, code string) (decl.Value, error) {
	expr, err := parser.Parse(code)
	if err != nil {
		ev.logger.Error("Error %v", err)
		return decl.None(), nil
	}
	return ev.Evaluate(env, expr)
}

// EvalScript reads every expression in code and evaluates them in order,
// returning the last result.  Unlike Eval, parse errors are returned and
// nothing is evaluated when the script does not parse.
func (ev *Evaluator) EvalScript(env *decl.Env, code string) (decl.Value, error) {
	forms, err := parser.ParseAll(code)
	if err != nil {
		return decl.None(), fmt.Errorf("parse failed: %w", err)
	}
	result := decl.None()
	for _, form := range forms {
		result, err = ev.Evaluate(env, form)
		if err != nil {
			return decl.None(), err
		}
	}
	return result, nil
}

// evalNum evaluates arg and coerces the result to a number, 0 when it is
// not one.  Errors from evaluating arg are returned, not coerced.
func (ev *Evaluator) evalNum(env *decl.Env, arg decl.Value) (float64, error) {
	v, err := ev.Evaluate(env, arg)
	if err != nil {
		return 0, err
	}
	return v.AsNum(), nil
}
