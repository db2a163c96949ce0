package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Violation is one schema or linkage check failure for a document.
// Fields are ordered to minimize memory padding.
type Violation struct {
	Source  string // document path or store the violation belongs to
	Message string
}

func (v Violation) String() string {
	if v.Source == "" {
		return v.Message
	}
	return v.Source + ": " + v.Message
}

// ItemSchema describes the required shape of a nested sub-document.
type ItemSchema struct {
	RequiredFields []string `yaml:"required_fields"`
}

// Contract is a declarative schema for task and report documents.
// Contracts are loaded fresh per validation run and never mutated.
type Contract struct {
	RequiredFields []string              `yaml:"required_fields"`
	Enums          map[string][]string   `yaml:"enums"`
	Constraints    map[string]int        `yaml:"constraints"`
	StringLists    []string              `yaml:"string_lists"`
	Items          map[string]ItemSchema `yaml:"items"`
	Mappings       map[string]ItemSchema `yaml:"mappings"`
}

// Validate checks a decoded document against the contract. It is pure and
// total: it never fails on malformed input and always returns a (possibly
// empty) violation list. Reporting order is deterministic for stable diffs.
func (c *Contract) Validate(doc map[string]any, source string) []Violation {
	var out []Violation
	add := func(format string, args ...any) {
		out = append(out, Violation{Source: source, Message: fmt.Sprintf(format, args...)})
	}

	for _, field := range c.RequiredFields {
		if _, ok := doc[field]; !ok {
			add("missing required field '%s'", field)
		}
	}

	for _, field := range sortedKeys(c.Enums) {
		allowed := c.Enums[field]
		if len(allowed) == 0 {
			continue
		}
		// A missing or non-string value is never a member, so it
		// violates a non-empty enum as well.
		raw, _ := doc[field].(string)
		if !contains(allowed, raw) {
			add("%s '%s' not in [%s]", field, raw, strings.Join(allowed, ", "))
		}
	}

	for _, field := range c.StringLists {
		val, ok := doc[field]
		if !ok || val == nil {
			continue
		}
		if !IsStringList(val) {
			add("'%s' must be a list of strings", field)
		}
	}

	for _, field := range sortedKeys(c.Items) {
		val, ok := doc[field]
		if !ok {
			continue
		}
		list, isList := val.([]any)
		if !isList {
			add("'%s' must be a list", field)
			continue
		}
		for i, elem := range list {
			item, isMap := asMapping(elem)
			if !isMap {
				add("%s[%d] must be a mapping", field, i)
				continue
			}
			for _, req := range c.Items[field].RequiredFields {
				if _, ok := item[req]; !ok {
					add("%s[%d] missing '%s'", field, i, req)
				}
			}
		}
	}

	for _, field := range sortedKeys(c.Mappings) {
		val, ok := doc[field]
		if !ok {
			continue
		}
		item, isMap := asMapping(val)
		if !isMap {
			add("'%s' must be a mapping", field)
			continue
		}
		for _, req := range c.Mappings[field].RequiredFields {
			if _, ok := item[req]; !ok {
				add("%s missing '%s'", field, req)
			}
		}
	}

	return out
}

// MaxLinesViolation checks a line-count constraint for one field, using the
// contract's `<field>_max_lines` constraint when present and the given
// default otherwise. String values count newline-separated lines; list
// values count elements. Returns nil when the constraint holds.
func (c *Contract) MaxLinesViolation(doc map[string]any, field string, def int, source string) *Violation {
	limit := def
	if override, ok := c.Constraints[field+"_max_lines"]; ok && override > 0 {
		limit = override
	}

	val, ok := doc[field]
	if !ok || val == nil {
		return nil
	}

	var count int
	switch v := val.(type) {
	case string:
		count = len(strings.Split(strings.TrimRight(v, "\n"), "\n"))
	case []any:
		count = len(v)
	default:
		return nil
	}

	if count > limit {
		return &Violation{
			Source:  source,
			Message: fmt.Sprintf("'%s' has %d lines > %d", field, count, limit),
		}
	}
	return nil
}

// IsStringList reports whether v is a list whose elements are all strings.
func IsStringList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, elem := range list {
		if _, ok := elem.(string); !ok {
			return false
		}
	}
	return true
}

// asMapping normalizes the two mapping shapes the YAML decoder can produce.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
