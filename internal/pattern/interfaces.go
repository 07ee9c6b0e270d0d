// Package pattern evaluates import rules that assign categories to transactions.
package pattern

import "github.com/Veraticus/budgetui/internal/model"

// Categorizer assigns a category to a transaction description.
type Categorizer interface {
	// Categorize returns the category of the first matching rule.
	Categorize(description, originalDescription string) (int64, bool)
}

// Rule is an alias to the model.ImportRule type for convenience.
type Rule = model.ImportRule
