package runtime

import (
	"github.com/panyam/owl/decl"
)

// Session pairs an evaluator with its root environment.  Create one per
// script or REPL; nothing is shared between sessions unless a registry is
// passed in explicitly.
type Session struct {
	Evaluator *Evaluator
	Env       *decl.Env
}

func NewSession(opts ...Option) *Session {
	return &Session{
		Evaluator: NewEvaluator(opts...),
		Env:       decl.NewEnv(nil),
	}
}

// NewSessionFromConfig builds a session from cfg and seeds its bindings.
// Extra options are applied after the configured ones.
func NewSessionFromConfig(cfg *SessionConfig, extra ...Option) (*Session, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	s := NewSession(append(opts, extra...)...)
	if err := cfg.Seed(s.Env); err != nil {
		return nil, err
	}
	return s, nil
}

// Eval evaluates the first expression in code.
func (s *Session) Eval(code string) (decl.Value, error) {
	return s.Evaluator.Eval(s.Env, code)
}

// Run evaluates every expression in code.
func (s *Session) Run(code string) (decl.Value, error) {
	return s.Evaluator.EvalScript(s.Env, code)
}

// Define binds name in the root environment.
func (s *Session) Define(name string, value decl.Value) {
	s.Env.Set(name, value)
}
