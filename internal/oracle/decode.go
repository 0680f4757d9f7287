package oracle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode"
)

// stripCodeFences removes a surrounding ```json ... ``` block, if any. The
// language tag is optional and may share the line with the JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	tagEnd := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
	})
	if tagEnd < 0 {
		tagEnd = len(s)
	}
	s = strings.TrimSpace(s[tagEnd:])
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeObject parses raw into an untyped tree. Numbers stay json.Number.
// Unparsable text is ErrFormat; valid JSON that is not an object is a schema violation.
func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(stripCodeFences(raw)))
	dec.UseNumber()

	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrFormat)
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, &SchemaError{Violations: []string{"$: expected object, got " + kindOf(tree)}}
	}
	return obj, nil
}

// checker collects violations while walking a decoded tree.
type checker struct {
	violations []string
}

func (c *checker) addf(format string, args ...any) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

func (c *checker) err() error {
	if len(c.violations) == 0 {
		return nil
	}
	return &SchemaError{Violations: c.violations}
}

// onlyKeys reports keys of obj not in allowed, in sorted order.
func (c *checker) onlyKeys(path string, obj map[string]any, allowed ...string) {
	var unknown []string
	for k := range obj {
		known := false
		for _, a := range allowed {
			if k == a {
				known = true
				break
			}
		}
		if !known {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		c.addf("%s: unknown key %q", path, k)
	}
}

func (c *checker) object(path string, v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		c.addf("%s: expected object, got %s", path, kindOf(v))
	}
	return obj, ok
}

func (c *checker) requiredString(path string, obj map[string]any, key string) (string, bool) {
	v, present := obj[key]
	if !present || v == nil {
		c.addf("%s.%s: required", path, key)
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		c.addf("%s.%s: expected string, got %s", path, key, kindOf(v))
		return "", false
	}
	return s, true
}

func (c *checker) optionalString(path string, obj map[string]any, key string) *string {
	v, present := obj[key]
	if !present || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		c.addf("%s.%s: expected string or null, got %s", path, key, kindOf(v))
		return nil
	}
	return &s
}

func (c *checker) requiredInt(path string, obj map[string]any, key string) (int, bool) {
	v, present := obj[key]
	if !present || v == nil {
		c.addf("%s.%s: required", path, key)
		return 0, false
	}
	i, ok := asInt(v)
	if !ok {
		c.addf("%s.%s: expected integer, got %s", path, key, kindOf(v))
	}
	return i, ok
}

func (c *checker) optionalNonNegativeInt(path string, obj map[string]any, key string) *int {
	v, present := obj[key]
	if !present || v == nil {
		return nil
	}
	i, ok := asInt(v)
	if !ok || i < 0 {
		c.addf("%s.%s: expected non-negative integer or null, got %s", path, key, describe(v))
		return nil
	}
	return &i
}

func (c *checker) optionalNonNegativeNumber(path string, obj map[string]any, key string) *float64 {
	v, present := obj[key]
	if !present || v == nil {
		return nil
	}
	n, ok := v.(json.Number)
	if !ok {
		c.addf("%s.%s: expected number or null, got %s", path, key, kindOf(v))
		return nil
	}
	f, err := n.Float64()
	if err != nil || f < 0 || math.IsInf(f, 0) {
		c.addf("%s.%s: expected non-negative number, got %s", path, key, n.String())
		return nil
	}
	return &f
}

func (c *checker) optionalList(path string, obj map[string]any, key string) []any {
	v, present := obj[key]
	if !present || v == nil {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		c.addf("%s.%s: expected list or null, got %s", path, key, kindOf(v))
		return nil
	}
	return list
}

// asInt accepts integral JSON numbers, including forms like 3.0.
func asInt(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func describe(v any) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return kindOf(v)
}

// excerpt shortens a reply for logging.
func excerpt(raw string, limit int) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(stripCodeFences(raw))); err == nil {
		raw = buf.String()
	}
	if len(raw) > limit {
		return raw[:limit] + "..."
	}
	return raw
}
