package pattern

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/budgetui/internal/model"
)

// Ensure RuleSet implements Categorizer.
var _ Categorizer = (*RuleSet)(nil)

type compiledRule struct {
	regex  *regexp.Regexp
	needle string // lowercased pattern of a contains rule
	rule   Rule
}

// RuleSet is an immutable, ordered snapshot of rules. Rules run in ascending
// priority (ties broken by ID) and the first match wins.
type RuleSet struct {
	rules []compiledRule
}

// NewRuleSet sorts and compiles rules. Every rule must pass ValidateRule.
func NewRuleSet(rules []Rule) (*RuleSet, error) {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].ID < sorted[j].ID
	})

	rs := &RuleSet{rules: make([]compiledRule, 0, len(sorted))}
	for _, rule := range sorted {
		if err := ValidateRule(rule); err != nil {
			return nil, fmt.Errorf("rule %d: %w", rule.ID, err)
		}

		cr := compiledRule{rule: rule}
		if rule.Kind == model.RuleRegex {
			cr.regex = regexp.MustCompile(rule.Pattern)
		} else {
			cr.needle = strings.ToLower(rule.Pattern)
		}
		rs.rules = append(rs.rules, cr)
	}

	return rs, nil
}

// Rules returns the rules in evaluation order.
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	for i, cr := range rs.rules {
		out[i] = cr.rule
	}
	return out
}

// Len is the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Match returns the first rule that matches. Contains rules test the
// description case-insensitively; regex rules test the original description
// (or the description when there is none) case-sensitively.
func (rs *RuleSet) Match(description, originalDescription string) (Rule, bool) {
	if originalDescription == "" {
		originalDescription = description
	}
	lowered := strings.ToLower(description)

	for _, cr := range rs.rules {
		if cr.regex != nil {
			if cr.regex.MatchString(originalDescription) {
				return cr.rule, true
			}
			continue
		}
		if strings.Contains(lowered, cr.needle) {
			return cr.rule, true
		}
	}
	return Rule{}, false
}

// Categorize returns the category of the first matching rule.
func (rs *RuleSet) Categorize(description, originalDescription string) (int64, bool) {
	rule, ok := rs.Match(description, originalDescription)
	if !ok {
		return 0, false
	}
	return rule.CategoryID, true
}
