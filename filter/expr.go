package filter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/docsink/sink"
)

// Expr admits events for which a boolean expression holds.
//
// The expression sees:
//
//	kind         string            kind name, e.g. "section1"
//	attrs        map[string]string attributes, empty when absent
//	hasAttrs     bool              whether attributes were supplied
//	args         []any             positional args
//	depth        int               open paired events, including this one
//	selfClosing  bool
//
// For example `kind == "section1" && attrs.id startsWith "api-"`.
type Expr struct {
	src string
	prg *vm.Program
	log *slog.Logger
}

// ExprEnv is the environment an Expr program runs against.
type ExprEnv struct {
	Kind        string            `expr:"kind"`
	Attrs       map[string]string `expr:"attrs"`
	HasAttrs    bool              `expr:"hasAttrs"`
	Args        []any             `expr:"args"`
	Depth       int               `expr:"depth"`
	SelfClosing bool              `expr:"selfClosing"`
}

// NewExprDecider compiles src.
func NewExprDecider(src string) (*Expr, error) {
	prg, err := expr.Compile(src, expr.Env(ExprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("error compiling filter %q: %w", src, err)
	}
	return &Expr{
		src: src,
		prg: prg,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// NewExpr makes a Filter around an Expr decider.
func NewExpr(delegate sink.Sink, src string, opts ...Option) (*Filter, error) {
	x, err := NewExprDecider(src)
	if err != nil {
		return nil, err
	}
	return New(delegate, x, opts...), nil
}

func (x *Expr) setLogger(l *slog.Logger) {
	x.log = l
}

func (x *Expr) Decide(stack *Stack, e *Entry) bool {
	attrs := map[string]string(e.Attrs)
	if attrs == nil {
		attrs = map[string]string{}
	}
	env := ExprEnv{
		Kind:        e.Kind.String(),
		Attrs:       attrs,
		HasAttrs:    e.Attrs != nil,
		Args:        e.Args,
		Depth:       stack.Depth(),
		SelfClosing: e.Kind.SelfClosing(),
	}
	res, err := expr.Run(x.prg, env)
	if err != nil {
		x.log.Log(context.Background(), slog.LevelWarn, "filter expression failed",
			"expr", x.src, "kind", env.Kind, "error", err)
		return false
	}
	b, _ := res.(bool)
	return b
}

func (x *Expr) String() string {
	return x.src
}
