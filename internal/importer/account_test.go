package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/model"
)

func TestResolveAccount(t *testing.T) {
	checking := model.Account{ID: 1, Name: "Checking", Type: model.AccountChecking}
	amex := model.Account{ID: 2, Name: "Amex Gold", Type: model.AccountCreditCard}

	tests := []struct {
		wantErr  error
		name     string
		query    string
		accounts []model.Account
		wantID   int64
	}{
		{name: "name ignores case", accounts: []model.Account{checking, amex}, query: "amex gold", wantID: 2},
		{name: "name is trimmed", accounts: []model.Account{checking, amex}, query: "  Checking ", wantID: 1},
		{name: "only account", accounts: []model.Account{amex}, wantID: 2},
		{name: "no accounts", wantErr: ErrAccountNotFound},
		{name: "unknown name", accounts: []model.Account{checking}, query: "Savings", wantErr: ErrAccountNotFound},
		{name: "ambiguous", accounts: []model.Account{checking, amex}, wantErr: ErrAccountAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAccount(tt.accounts, tt.query)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestResolveAccount_ListsCandidates(t *testing.T) {
	_, err := ResolveAccount([]model.Account{{Name: "Checking"}, {Name: "Savings"}}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Checking, Savings")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "detecting", StageDetecting.String())
	assert.Equal(t, "committed", StageCommitted.String())
	assert.Equal(t, "stage(9)", Stage(9).String())
}
