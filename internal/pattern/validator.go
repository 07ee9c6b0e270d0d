package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/budgetui/internal/model"
)

// ErrInvalidPattern is returned for patterns that can never be evaluated.
var ErrInvalidPattern = errors.New("invalid rule pattern")

// ValidatePattern checks a pattern before it is stored as a rule.
func ValidatePattern(kind model.RuleKind, pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return fmt.Errorf("%w: pattern is empty", ErrInvalidPattern)
	}

	switch kind {
	case model.RuleContains:
		return nil
	case model.RuleRegex:
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown kind %q", ErrInvalidPattern, kind)
}

// ValidateRule checks every field a stored rule needs.
func ValidateRule(rule Rule) error {
	if err := ValidatePattern(rule.Kind, rule.Pattern); err != nil {
		return err
	}
	if rule.CategoryID <= 0 {
		return fmt.Errorf("%w: rule %q has no category", ErrInvalidPattern, rule.Pattern)
	}
	return nil
}
