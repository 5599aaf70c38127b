// utils/template.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Render substitutes {{ key }} variables and resolves {{#if key}}...{{/if}}
// blocks in a template. Missing or falsy values substitute the empty string;
// malformed or unterminated tags are left in the output unchanged. Blocks do
// not nest. The function is pure and safe for concurrent use.
//
// Conditionals are resolved before variables, so variables inside a kept
// block body are still substituted.
func Render(template string, context map[string]interface{}) string {
	return substituteVars(resolveConditionals(template, context), context)
}

func resolveConditionals(s string, context map[string]interface{}) string {
	var out strings.Builder
	i := 0
	for {
		open := strings.Index(s[i:], "{{")
		if open < 0 {
			out.WriteString(s[i:])
			break
		}
		open += i
		end := strings.Index(s[open+2:], "}}")
		if end < 0 {
			// unterminated tag, leave the rest verbatim
			out.WriteString(s[i:])
			break
		}
		end += open + 2
		key, ok := ifTagKey(s[open+2 : end])
		if !ok {
			// not a conditional opener; variables are handled in the next pass
			out.WriteString(s[i : end+2])
			i = end + 2
			continue
		}
		body, after, closed := findEndIf(s, end+2)
		if !closed {
			// block never closes: opening tag stays verbatim
			out.WriteString(s[i : end+2])
			i = end + 2
			continue
		}
		out.WriteString(s[i:open])
		if Truthy(context[key]) {
			out.WriteString(body)
		}
		i = after
	}
	return out.String()
}

// ifTagKey reports whether the tag interior is a well-formed "#if key" opener.
func ifTagKey(inner string) (string, bool) {
	fields := strings.Fields(strings.TrimSpace(inner))
	if len(fields) != 2 || fields[0] != "#if" {
		return "", false
	}
	return fields[1], true
}

// findEndIf scans forward from the end of an opening tag to the matching
// {{/if}}, skipping over any variable tags in between.
func findEndIf(s string, from int) (body string, after int, found bool) {
	i := from
	for {
		open := strings.Index(s[i:], "{{")
		if open < 0 {
			return "", 0, false
		}
		open += i
		end := strings.Index(s[open+2:], "}}")
		if end < 0 {
			return "", 0, false
		}
		end += open + 2
		if strings.TrimSpace(s[open+2:end]) == "/if" {
			return s[from:open], end + 2, true
		}
		i = end + 2
	}
}

func substituteVars(s string, context map[string]interface{}) string {
	var out strings.Builder
	i := 0
	for {
		open := strings.Index(s[i:], "{{")
		if open < 0 {
			out.WriteString(s[i:])
			break
		}
		open += i
		end := strings.Index(s[open+2:], "}}")
		if end < 0 {
			out.WriteString(s[i:])
			break
		}
		end += open + 2
		key := strings.TrimSpace(s[open+2 : end])
		if !isVarName(key) {
			// malformed tag or stray block marker, left verbatim
			out.WriteString(s[i : end+2])
			i = end + 2
			continue
		}
		out.WriteString(s[i:open])
		out.WriteString(Stringify(context[key]))
		i = end + 2
	}
	return out.String()
}

func isVarName(key string) bool {
	if key == "" || strings.ContainsAny(key, " \t\n{}") {
		return false
	}
	return key[0] != '#' && key[0] != '/'
}

// Stringify converts a context value to its canonical string form. Falsy
// values (nil, false, empty string, numeric zero) become the empty string.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case int:
		return zeroBlank(strconv.FormatInt(int64(t), 10))
	case int32:
		return zeroBlank(strconv.FormatInt(int64(t), 10))
	case int64:
		return zeroBlank(strconv.FormatInt(t, 10))
	case float32:
		return zeroBlank(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case float64:
		return zeroBlank(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		return fmt.Sprint(v)
	}
}

func zeroBlank(s string) string {
	if s == "0" {
		return ""
	}
	return s
}

// Truthy mirrors the substitution rules: anything that would substitute a
// non-empty string keeps a conditional block.
func Truthy(v interface{}) bool {
	return Stringify(v) != ""
}
