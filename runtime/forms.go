package runtime

import (
	"fmt"

	"github.com/panyam/owl/decl"
)

// SpecialForms lists the identifiers the evaluator handles itself.  They are
// looked up before intrinsics and cannot be redefined.
var SpecialForms = []string{"def", "do", "fun", "if", "set"}

func IsSpecialForm(name string) bool {
	for _, f := range SpecialForms {
		if f == name {
			return true
		}
	}
	return false
}

// evaluateSpecialForm runs ident if it names a special form.  handled is
// false when it does not.
func (ev *Evaluator) evaluateSpecialForm(env *decl.Env, ident string, args []decl.Value) (result decl.Value, handled bool, err error) {
	switch ident {
	case "do":
		result, err = ev.evalDo(env, args)
	case "if":
		result, err = ev.evalIf(env, args)
	case "def":
		result, err = ev.evalDef(env, args)
	case "set":
		result, err = ev.evalSet(env, args)
	case "fun":
		result, err = ev.evalFun(env, args)
	default:
		return decl.None(), false, nil
	}
	return result, true, err
}

// (do e1 e2 ...) evaluates in order and yields the last value.
func (ev *Evaluator) evalDo(env *decl.Env, args []decl.Value) (result decl.Value, err error) {
	result = decl.None()
	for _, arg := range args {
		if result, err = ev.Evaluate(env, arg); err != nil {
			return decl.None(), err
		}
	}
	return
}

// (if cond then [else])
func (ev *Evaluator) evalIf(env *decl.Env, args []decl.Value) (decl.Value, error) {
	if len(args) < 2 {
		return ev.fatal(formError("if", args, fmt.Errorf("%w: need a condition and a then branch", ErrMissingArguments)))
	}
	cond, err := ev.Evaluate(env, args[0])
	if err != nil {
		return decl.None(), err
	}
	if cond.IsTruthy() {
		return ev.Evaluate(env, args[1])
	}
	if len(args) > 2 {
		return ev.Evaluate(env, args[2])
	}
	return decl.None(), nil
}

// symbolArg returns the name in the first argument of a binding form.
func (ev *Evaluator) symbolArg(form string, args []decl.Value) (string, error) {
	if len(args) == 0 {
		return "", formError(form, args, fmt.Errorf("%w: need a symbol", ErrMissingArguments))
	}
	name, err := args[0].GetSymbol()
	if err != nil {
		return "", formError(form, args, fmt.Errorf("%w, got %s", ErrNotASymbol, args[0].String()))
	}
	return name, nil
}

// valueArg evaluates the second argument of a binding form, None if absent.
func (ev *Evaluator) valueArg(env *decl.Env, args []decl.Value) (decl.Value, error) {
	if len(args) < 2 {
		return decl.None(), nil
	}
	return ev.Evaluate(env, args[1])
}

// (def sym value) binds in the innermost scope.
func (ev *Evaluator) evalDef(env *decl.Env, args []decl.Value) (decl.Value, error) {
	name, err := ev.symbolArg("def", args)
	if err != nil {
		return ev.fatal(err)
	}
	value, err := ev.valueArg(env, args)
	if err != nil {
		return decl.None(), err
	}
	env.Set(name, value)
	return value, nil
}

// (set sym value) rewrites the innermost scope already holding sym.
func (ev *Evaluator) evalSet(env *decl.Env, args []decl.Value) (decl.Value, error) {
	name, err := ev.symbolArg("set", args)
	if err != nil {
		return ev.fatal(err)
	}
	if !env.Has(name) {
		return ev.fatal(formError("set", args, fmt.Errorf("%w: %s", ErrUnboundSymbol, name)))
	}
	value, err := ev.valueArg(env, args)
	if err != nil {
		return decl.None(), err
	}
	env.Assign(name, value)
	return value, nil
}

// (fun sym ...) only validates its name.  Function definitions are not
// supported yet so nothing is bound.
func (ev *Evaluator) evalFun(env *decl.Env, args []decl.Value) (decl.Value, error) {
	name, err := ev.symbolArg("fun", args)
	if err != nil {
		return ev.fatal(err)
	}
	if env.HasLocal(name) {
		return ev.fatal(formError("fun", args, fmt.Errorf("%w: %s", ErrAlreadyBound, name)))
	}
	return decl.None(), nil
}
