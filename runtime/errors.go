package runtime

import (
	"errors"
	"fmt"

	"github.com/panyam/owl/decl"
)

var (
	ErrMissingArguments = errors.New("missing arguments")
	ErrNotASymbol       = errors.New("expected a symbol")
	ErrUnboundSymbol    = errors.New("symbol is not bound")
	ErrAlreadyBound     = errors.New("symbol is already bound")
	ErrDepthExceeded    = errors.New("maximum evaluation depth exceeded")
)

// FormError reports malformed use of a special form.  These are the
// conditions the fatal policy governs.
type FormError struct {
	Form   string
	Expr   decl.Value
	Reason error
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %v in %s", e.Form, e.Reason, e.Expr.String())
}

func (e *FormError) Unwrap() error {
	return e.Reason
}

// formError builds a FormError for the form applied to args.
func formError(form string, args []decl.Value, reason error) *FormError {
	expr := decl.ListValue(append([]decl.Value{decl.SymValue(form)}, args...)...)
	return &FormError{Form: form, Expr: expr, Reason: reason}
}

// fatal applies the fatal policy to err: it is either handed back to the
// caller or raised as a panic.
func (ev *Evaluator) fatal(err error) (decl.Value, error) {
	ev.logger.Warn("%v", err)
	if ev.fatalPolicy == FatalPanic {
		panic(err)
	}
	return decl.None(), err
}
