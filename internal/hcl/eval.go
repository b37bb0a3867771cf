package hcl

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// newEvalContext exposes the environment as `env` and a small function table.
func newEvalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" || !utf8.ValidString(key) || !utf8.ValidString(value) {
			continue
		}
		env[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
			"concat": stdlib.ConcatFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

func processEvalContext() *hcl.EvalContext {
	return newEvalContext(os.Environ())
}
