package commands

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/hay-kot/ellipsis/internal/links"
)

// planFunc resolves a link definition without applying it.
type planFunc func(links.Definition) (links.Plan, error)

// linkEnv is the environment link expressions are evaluated against. Paths
// are the resolved absolute paths.
func linkEnv(plan links.Plan) map[string]any {
	return map[string]any{
		"name": plan.Name,
		"kind": string(plan.Kind),
		"from": plan.From,
		"to":   plan.To,
	}
}

// compileExpr compiles an expression string once for reuse
func compileExpr(code string) (*vm.Program, error) {
	if code == "" {
		code = "true" // default: match everything
	}

	return expr.Compile(code, expr.Env(linkEnv(links.Plan{})), expr.AsBool())
}

// evalCompiledExpr evaluates a pre-compiled expression with given context
func evalCompiledExpr(program *vm.Program, env map[string]any) (bool, error) {
	output, err := expr.Run(program, env)
	if err != nil {
		return false, err
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("expression did not evaluate to boolean, got %T", output)
	}

	return result, nil
}

// filterLinks returns the definitions whose resolved plan matches code, in
// declaration order.
func filterLinks(code string, defs []links.Definition, plan planFunc) ([]links.Definition, error) {
	program, err := compileExpr(code)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	var matched []links.Definition
	for _, def := range defs {
		p, err := plan(def)
		if err != nil {
			return nil, err
		}

		ok, err := evalCompiledExpr(program, linkEnv(p))
		if err != nil {
			return nil, fmt.Errorf("expression evaluation failed for link %s: %w", def.Label(), err)
		}

		if ok {
			matched = append(matched, def)
		}
	}

	return matched, nil
}
