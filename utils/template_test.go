package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test 1: Identical arguments always produce identical output
func TestRender_Deterministic(t *testing.T) {
	template := "Hello {{ name }}{{#if has_tasks}}, {{ n }} tasks{{/if}}."
	context := map[string]interface{}{"name": "Bob", "has_tasks": true, "n": 2}

	first := Render(template, context)
	second := Render(template, context)

	assert.Equal(t, first, second)
}

// Test 2: Truthy conditional keeps the body, with variables inside it substituted
func TestRender_ConditionalTruthy(t *testing.T) {
	out := Render(
		"Hello {{ name }}{{#if has_tasks}}, {{ n }} tasks{{/if}}.",
		map[string]interface{}{"name": "Bob", "has_tasks": true, "n": 2},
	)
	assert.Equal(t, "Hello Bob, 2 tasks.", out)
}

// Test 3: Falsy conditional removes the whole block, tags included
func TestRender_ConditionalFalsy(t *testing.T) {
	out := Render(
		"Hello {{ name }}{{#if has_tasks}}, {{ n }} tasks{{/if}}.",
		map[string]interface{}{"name": "Bob", "has_tasks": false},
	)
	assert.Equal(t, "Hello Bob.", out)
}

// Test 4: Missing and falsy values substitute the empty string
func TestRender_MissingAndFalsyValues(t *testing.T) {
	context := map[string]interface{}{
		"empty": "",
		"zero":  0,
		"off":   false,
	}

	assert.Equal(t, "[]", Render("[{{ absent }}]", context))
	assert.Equal(t, "[]", Render("[{{ empty }}]", context))
	assert.Equal(t, "[]", Render("[{{ zero }}]", context))
	assert.Equal(t, "[]", Render("[{{ off }}]", context))
}

// Test 5: Malformed or unterminated tags are left in the output unchanged
func TestRender_MalformedTagsLeftVerbatim(t *testing.T) {
	context := map[string]interface{}{"name": "Bob", "x": true}

	cases := []string{
		"Hi {{ name",                // unterminated variable tag
		"Hi {{ two words }}",        // not a single key
		"stray {{/if}} close",       // orphan close tag
		"open {{#if x}} never ends", // block without a close
	}
	for _, tc := range cases {
		assert.Equal(t, tc, Render(tc, context))
	}
}

// Test 6: Canonical string forms for numbers and booleans
func TestRender_CanonicalStringForms(t *testing.T) {
	out := Render("{{ flag }}/{{ count }}/{{ ratio }}", map[string]interface{}{
		"flag":  true,
		"count": int64(42),
		"ratio": 2.5,
	})
	assert.Equal(t, "true/42/2.5", out)
}

// Test 7: Sequential blocks are resolved independently
func TestRender_SequentialBlocks(t *testing.T) {
	out := Render(
		"{{#if a}}A{{/if}}{{#if b}}B{{/if}}",
		map[string]interface{}{"a": true, "b": false},
	)
	assert.Equal(t, "A", out)
}
