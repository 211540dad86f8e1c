package io

import (
	"github.com/expr-lang/expr"

	"github.com/matzehuels/s7db/pkg/errors"
)

// evalExpr compiles and runs a value expression. The environment exposes
// the block and variable names so expressions can derive values from them,
// e.g. `len(variable)` or `map(1..8, # * 10)`.
func evalExpr(source, block, variable string) (any, error) {
	env := map[string]any{
		"block":    block,
		"variable": variable,
	}

	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "compile expression %q", source)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidValue, err, "evaluate expression %q", source)
	}
	return out, nil
}
