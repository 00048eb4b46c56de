package runtime

import (
	"fmt"
	"strings"
)

// FatalPolicy decides what happens on malformed special form usage.
type FatalPolicy int

const (
	// FatalReturn returns a *FormError from Evaluate.
	FatalReturn FatalPolicy = iota
	// FatalPanic panics with the *FormError, aborting the host unless it
	// recovers.
	FatalPanic
)

func (p FatalPolicy) String() string {
	if p == FatalPanic {
		return "panic"
	}
	return "return"
}

func ParseFatalPolicy(s string) (FatalPolicy, error) {
	switch strings.ToLower(s) {
	case "", "return", "error":
		return FatalReturn, nil
	case "panic", "abort":
		return FatalPanic, nil
	}
	return FatalReturn, fmt.Errorf("unknown fatal policy: %s", s)
}

// SeedPolicy decides how -, / and = treat their first argument.
type SeedPolicy int

const (
	// SeedEvaluated evaluates the first argument like every other one.
	SeedEvaluated SeedPolicy = iota
	// SeedRaw uses the unevaluated first argument as is: its numeric
	// coercion for - and /, its structure for =.  So (- x 1) is -1 whatever
	// x is bound to.
	SeedRaw
)

func (p SeedPolicy) String() string {
	if p == SeedRaw {
		return "raw"
	}
	return "evaluated"
}

func ParseSeedPolicy(s string) (SeedPolicy, error) {
	switch strings.ToLower(s) {
	case "", "evaluated", "eval":
		return SeedEvaluated, nil
	case "raw":
		return SeedRaw, nil
	}
	return SeedEvaluated, fmt.Errorf("unknown seed policy: %s", s)
}

// DefaultMaxDepth bounds how deeply Evaluate may recurse.
const DefaultMaxDepth = 10000

type Option func(ev *Evaluator)

func WithLogger(logger Logger) Option {
	return func(ev *Evaluator) {
		ev.logger = logger
	}
}

func WithFatalPolicy(policy FatalPolicy) Option {
	return func(ev *Evaluator) {
		ev.fatalPolicy = policy
	}
}

func WithSeedPolicy(policy SeedPolicy) Option {
	return func(ev *Evaluator) {
		ev.seedPolicy = policy
	}
}

// WithMaxDepth sets the recursion guard.  Values <= 0 restore the default.
func WithMaxDepth(depth int) Option {
	return func(ev *Evaluator) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		ev.maxDepth = depth
	}
}

// WithRegistry makes the evaluator use an existing (shared) registry
// instead of building its own.
func WithRegistry(registry *Registry) Option {
	return func(ev *Evaluator) {
		ev.registry = registry
	}
}
