package dedupe

import (
	"fmt"
	"hash/fnv"
	"testing"
	"time"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func candidate(desc, amount string, day int) model.Candidate {
	return model.Candidate{
		AccountID:   7,
		Date:        time.Date(2024, time.January, day, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestHash_Stable(t *testing.T) {
	c := candidate("COFFEE SHOP", "-4.50", 15)

	first := Hash(c)
	assert.Equal(t, first, Hash(c))
	assert.Len(t, first, len(ImportPrefix)+16)
	assert.Equal(t, ImportPrefix, first[:len(ImportPrefix)])
}

func TestHash_KnownVector(t *testing.T) {
	c := candidate("COFFEE SHOP", "-4.5", 15)

	h := fnv.New64a()
	_, _ = h.Write([]byte("v1\x1f7\x1f2024-01-15\x1fCOFFEE SHOP\x1f-4.50"))
	assert.Equal(t, fmt.Sprintf("v1-%016x", h.Sum64()), Hash(c))
}

func TestHash_AmountScaleIsCanonical(t *testing.T) {
	assert.Equal(t, Hash(candidate("RENT", "-900", 1)), Hash(candidate("RENT", "-900.00", 1)))
}

func TestHash_Differs(t *testing.T) {
	base := candidate("COFFEE SHOP", "-4.50", 15)

	otherAccount := base
	otherAccount.AccountID = 8

	variants := map[string]model.Candidate{
		"date":        candidate("COFFEE SHOP", "-4.50", 16),
		"description": candidate("COFFEE SHOP 2", "-4.50", 15),
		"amount":      candidate("COFFEE SHOP", "-4.51", 15),
		"account":     otherAccount,
	}
	for name, v := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, Hash(base), Hash(v))
		})
	}
}

func TestManualHash(t *testing.T) {
	c := candidate("CASH", "-20.00", 3)

	manual := ManualHash(c, "entry-1")
	assert.True(t, IsManual(manual))
	assert.False(t, IsManual(Hash(c)))
	assert.NotEqual(t, Hash(c)[len(ImportPrefix):], manual[len(ManualPrefix):])
	assert.NotEqual(t, manual, ManualHash(c, "entry-2"))
}
