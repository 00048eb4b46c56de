package runtime

import (
	"sort"

	"github.com/panyam/owl/decl"
)

// Intrinsic is a built-in operation.  It receives its arguments unevaluated
// and decides itself which of them to evaluate.
type Intrinsic interface {
	Name() string
	Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error)
}

// IntrinsicFunc adapts a plain function into an Intrinsic.
type IntrinsicFunc struct {
	name string
	fn   func(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error)
}

func NewIntrinsic(name string, fn func(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error)) *IntrinsicFunc {
	return &IntrinsicFunc{name: name, fn: fn}
}

func (f *IntrinsicFunc) Name() string { return f.name }

func (f *IntrinsicFunc) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	return f.fn(ev, env, args)
}

// Registry is a name keyed table of intrinsics.  It is filled in once while
// a session is set up and only read afterwards, so several evaluators may
// share one.
type Registry struct {
	intrinsics map[string]Intrinsic
}

func NewRegistry() *Registry {
	return &Registry{intrinsics: make(map[string]Intrinsic)}
}

func (r *Registry) Add(intr Intrinsic) {
	r.intrinsics[intr.Name()] = intr
}

func (r *Registry) Get(name string) (intr Intrinsic, ok bool) {
	intr, ok = r.intrinsics[name]
	return
}

func (r *Registry) Has(name string) bool {
	_, ok := r.intrinsics[name]
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.intrinsics))
	for name := range r.intrinsics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) AddBaseIntrinsics() {
	r.Add(EvalIntrinsic{})
	r.Add(Equals{})
	r.Add(Add{})
	r.Add(Mul{})
	r.Add(Sub{})
	r.Add(Div{})
}

// EvalIntrinsic implements (eval x): x is evaluated and the result evaluated
// once more.  A string result is read as source text first.
type EvalIntrinsic struct{}

func (EvalIntrinsic) Name() string { return "eval" }

func (EvalIntrinsic) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	if len(args) == 0 {
		return decl.None(), nil
	}
	code, err := ev.Evaluate(env, args[0])
	if err != nil {
		return decl.None(), err
	}
	if text, err := code.GetString(); err == nil {
		return ev.Eval(env, text)
	}
	return ev.Evaluate(env, code)
}

// Add sums its evaluated arguments starting from 0.
type Add struct{}

func (Add) Name() string { return "+" }

func (Add) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	total := 0.0
	for _, arg := range args {
		n, err := ev.evalNum(env, arg)
		if err != nil {
			return decl.None(), err
		}
		total += n
	}
	return decl.NumValue(total), nil
}

// Mul multiplies its evaluated arguments starting from 1.  Non numbers count
// as 0, not 1.
type Mul struct{}

func (Mul) Name() string { return "*" }

func (Mul) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	total := 1.0
	for _, arg := range args {
		n, err := ev.evalNum(env, arg)
		if err != nil {
			return decl.None(), err
		}
		total *= n
	}
	return decl.NumValue(total), nil
}

// seed returns the starting value for - and / according to the seed policy.
func (ev *Evaluator) seed(env *decl.Env, args []decl.Value) (float64, error) {
	if len(args) == 0 {
		return 0.0, nil
	}
	if ev.seedPolicy == SeedRaw {
		return args[0].AsNum(), nil
	}
	return ev.evalNum(env, args[0])
}

// fold seeds from the first argument and combines each remaining evaluated
// argument into it.
func (ev *Evaluator) fold(env *decl.Env, args []decl.Value, combine func(acc, n float64) float64) (decl.Value, error) {
	total, err := ev.seed(env, args)
	if err != nil {
		return decl.None(), err
	}
	for i := 1; i < len(args); i++ {
		n, err := ev.evalNum(env, args[i])
		if err != nil {
			return decl.None(), err
		}
		total = combine(total, n)
	}
	return decl.NumValue(total), nil
}

// Sub subtracts the remaining arguments from the first.  (- 5) is 5.
type Sub struct{}

func (Sub) Name() string { return "-" }

func (Sub) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	return ev.fold(env, args, func(acc, n float64) float64 { return acc - n })
}

// Div divides the first argument by the remaining ones.  Division by zero
// gives the usual IEEE infinities or NaN.
type Div struct{}

func (Div) Name() string { return "/" }

func (Div) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	return ev.fold(env, args, func(acc, n float64) float64 { return acc / n })
}

// Equals is true when every remaining argument equals the first.  With
// nothing to compare against it is vacuously true.
type Equals struct{}

func (Equals) Name() string { return "=" }

func (Equals) Eval(ev *Evaluator, env *decl.Env, args []decl.Value) (decl.Value, error) {
	if len(args) == 0 {
		return decl.BoolValue(true), nil
	}
	head := args[0]
	if ev.seedPolicy != SeedRaw {
		var err error
		if head, err = ev.Evaluate(env, head); err != nil {
			return decl.None(), err
		}
	}
	for _, arg := range args[1:] {
		value, err := ev.Evaluate(env, arg)
		if err != nil {
			return decl.None(), err
		}
		if !head.Equals(value) {
			return decl.BoolValue(false), nil
		}
	}
	return decl.BoolValue(true), nil
}
