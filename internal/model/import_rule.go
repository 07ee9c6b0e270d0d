// Package model defines the core data structures for the budgetui application.
package model

import (
	"fmt"
	"strings"
)

// RuleKind selects how an ImportRule pattern is evaluated.
type RuleKind string

// Rule kinds.
const (
	// RuleContains matches a case-insensitive substring of the description.
	RuleContains RuleKind = "contains"
	// RuleRegex matches a case-sensitive regular expression against the original description.
	RuleRegex RuleKind = "regex"
)

// ParseRuleKind converts user input into a RuleKind.
func ParseRuleKind(s string) (RuleKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contains", "substring", "literal":
		return RuleContains, nil
	case "regex", "regexp", "re":
		return RuleRegex, nil
	}
	return "", fmt.Errorf("unknown rule kind %q", s)
}

// ImportRule maps a description pattern to a category. Lower priority values
// are evaluated first and priorities are unique.
type ImportRule struct {
	Pattern    string   `json:"pattern" yaml:"pattern"`
	Kind       RuleKind `json:"kind" yaml:"kind"`
	Category   string   `json:"category,omitempty" yaml:"category"`
	ID         int64    `json:"id" yaml:"-"`
	CategoryID int64    `json:"category_id" yaml:"-"`
	Priority   int      `json:"priority" yaml:"priority"`
}
