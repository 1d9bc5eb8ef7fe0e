// Package script embeds the scripting sandbox that pre- and post-request
// scripts run in. It wraps github.com/dop251/goja (a pure-Go ECMAScript 5.1
// engine) with the fixed set of bindings and host functions the design
// calls for: env, status, headers, data, expect_toEqual, expect_toContain,
// and jsonPath.
package script

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/dop251/goja"
	"github.com/tidwall/gjson"

	questerrors "github.com/randalmurphal/quest/internal/errors"
)

// assertionTag prefixes the message of any error thrown by an expect_*
// host function, distinguishing AssertionFailed from other ScriptErrors.
const assertionTag = "assertion failed: "

// Context is the evaluation context exposed to one script call. Env is
// mutated in place by the script (pre-script and post-script share the
// same Env instance). Status, Headers, and Data are only populated for
// post-scripts; a pre-script simply never sees them bound.
type Context struct {
	Env     map[string]string
	Status  int
	Headers map[string]string
	Data    any
	IsPost  bool
}

// Run evaluates source against ctx. On success, Env is left holding the
// committed seed map: it is the same map instance passed in, mutated
// in-place, with non-string values converted to their textual form.
// On any parse, runtime, or assertion error, Env is left untouched from
// the caller's perspective (commit only happens if the caller chooses to
// use it, per the executor's state machine) and a *errors.QuestError of
// kind ScriptError or AssertionFailed is returned.
func Run(phase string, source string, ctx *Context) error {
	vm := goja.New()

	envObj := make(map[string]any, len(ctx.Env))
	for k, v := range ctx.Env {
		envObj[k] = v
	}
	if err := vm.Set("env", envObj); err != nil {
		return questerrors.ErrScriptError(phase, err)
	}

	if ctx.IsPost {
		if err := vm.Set("status", ctx.Status); err != nil {
			return questerrors.ErrScriptError(phase, err)
		}
		if err := vm.Set("headers", ctx.Headers); err != nil {
			return questerrors.ErrScriptError(phase, err)
		}
		if ctx.Data != nil {
			if err := vm.Set("data", ctx.Data); err != nil {
				return questerrors.ErrScriptError(phase, err)
			}
		}
	}

	registerHostFunctions(vm)

	_, err := vm.RunString(source)
	if err != nil {
		if exc, ok := err.(*goja.Exception); ok {
			msg := exc.Value().String()
			if rest, isAssertion := strings.CutPrefix(msg, assertionTag); isAssertion {
				return questerrors.ErrAssertionFailed(rest)
			}
		}
		return questerrors.ErrScriptError(phase, err)
	}

	for k, v := range envObj {
		ctx.Env[k] = toText(v)
	}
	for k := range ctx.Env {
		if _, ok := envObj[k]; !ok {
			delete(ctx.Env, k)
		}
	}

	return nil
}

// toText converts a value read back from the script's env binding to its
// textual form, the asymmetric coercion the design calls for: scripts may
// assign any JSON-like value to env, but the store is string-only.
func toText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case bool, float64, int, int64:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func registerHostFunctions(vm *goja.Runtime) {
	vm.Set("expect_toEqual", func(call goja.FunctionCall) goja.Value {
		a := call.Argument(0).Export()
		b := call.Argument(1).Export()
		if !jsonEqual(a, b) {
			panic(vm.ToValue(fmt.Sprintf("%sexpected %s to equal %s", assertionTag, toJSONText(a), toJSONText(b))))
		}
		return goja.Undefined()
	})

	vm.Set("expect_toContain", func(call goja.FunctionCall) goja.Value {
		haystackVal := call.Argument(0)
		needle := call.Argument(1).String()

		var haystack string
		if s, ok := haystackVal.Export().(string); ok {
			haystack = s
		} else {
			haystack = toJSONText(haystackVal.Export())
		}

		if !strings.Contains(haystack, needle) {
			panic(vm.ToValue(fmt.Sprintf("%sexpected %q to contain %q", assertionTag, haystack, needle)))
		}
		return goja.Undefined()
	})

	vm.Set("jsonPath", func(call goja.FunctionCall) goja.Value {
		value := call.Argument(0).Export()
		expr := call.Argument(1).String()

		jsonText := toJSONText(value)
		result := gjson.Get(jsonText, gjsonPath(expr))
		if !result.Exists() {
			return goja.Undefined()
		}

		switch {
		case result.IsArray() || result.IsObject():
			var v any
			_ = json.Unmarshal([]byte(result.Raw), &v)
			return vm.ToValue(v)
		case result.Type == gjson.Number:
			return vm.ToValue(result.Num)
		case result.Type == gjson.True || result.Type == gjson.False:
			return vm.ToValue(result.Bool())
		default:
			return vm.ToValue(result.String())
		}
	})
}

// gjsonPath adapts a JSONPath-flavored expression ("$.items[0].id") to
// gjson's own dotted path syntax ("items.0.id"), which is what
// internal/script's predecessor (internal/variable/extract.go in the
// pre-transformation tree) already did for a single flat field lookup.
func gjsonPath(expr string) string {
	expr = strings.TrimPrefix(expr, "$.")
	expr = strings.TrimPrefix(expr, "$")
	expr = strings.ReplaceAll(expr, "[", ".")
	expr = strings.ReplaceAll(expr, "]", "")
	return strings.TrimPrefix(expr, ".")
}

func toJSONText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func jsonEqual(a, b any) bool {
	an, bn := normalizeJSON(a), normalizeJSON(b)
	return reflect.DeepEqual(an, bn)
}

// normalizeJSON round-trips a value through JSON so that equivalent values
// coming from different sources (a goja-exported map[string]interface{}
// versus a decoded response body) compare equal regardless of numeric
// representation.
func normalizeJSON(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
