package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/budgetui/internal/model"
)

// ErrAccountNotFound and ErrAccountAmbiguous explain NoAccountResolved failures.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountAmbiguous = errors.New("account is ambiguous")
)

// ResolveAccount picks the import target. A name matches case-insensitively;
// with no name the only account is used.
func ResolveAccount(accounts []model.Account, name string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		for i := range accounts {
			if strings.EqualFold(accounts[i].Name, name) {
				return &accounts[i], nil
			}
		}
		return nil, fmt.Errorf("%w: no account named %q%s", ErrAccountNotFound, name, candidates(accounts))
	}

	switch len(accounts) {
	case 0:
		return nil, fmt.Errorf("%w: no accounts exist", ErrAccountNotFound)
	case 1:
		return &accounts[0], nil
	}
	return nil, fmt.Errorf("%w: choose one of %d accounts%s", ErrAccountAmbiguous, len(accounts), candidates(accounts))
}

func candidates(accounts []model.Account) string {
	if len(accounts) == 0 {
		return ""
	}
	names := make([]string, len(accounts))
	for i, a := range accounts {
		names[i] = a.Name
	}
	return " (have: " + strings.Join(names, ", ") + ")"
}
