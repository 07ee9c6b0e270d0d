package pattern

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/budgetui/internal/model"
	"gopkg.in/yaml.v3"
)

// RuleFile is the YAML document used to share rules between databases.
// Categories are referenced by name.
type RuleFile struct {
	Rules []Rule `yaml:"rules"`
}

// ReadRuleFile decodes and validates a rule file. A missing kind means contains.
func ReadRuleFile(r io.Reader) ([]Rule, error) {
	var file RuleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode rule file: %w", err)
	}

	for i := range file.Rules {
		rule := &file.Rules[i]
		kind, err := model.ParseRuleKind(string(rule.Kind))
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w: %v", i+1, ErrInvalidPattern, err)
		}
		rule.Kind = kind
		if err := ValidatePattern(rule.Kind, rule.Pattern); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		if strings.TrimSpace(rule.Category) == "" {
			return nil, fmt.Errorf("rule %d (%q): category is required", i+1, rule.Pattern)
		}
	}
	return file.Rules, nil
}

// WriteRuleFile encodes rules in evaluation order. Category names must be set.
func WriteRuleFile(w io.Writer, rules []Rule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(RuleFile{Rules: rules}); err != nil {
		return fmt.Errorf("failed to encode rule file: %w", err)
	}
	return enc.Close()
}
