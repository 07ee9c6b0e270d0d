// Package dedupe computes stable import hashes and filters duplicate candidates.
//
// Hash format v1 is FNV-1a 64 over the UTF-8 bytes
//
//	"v1" US account-id US yyyy-mm-dd US description US amount
//
// where US is the 0x1F unit separator, account-id is base 10 and amount is
// rounded to two fractional digits. description is the candidate's
// Description as the normalizer produced it from the raw cell: trimmed, with
// runs of whitespace collapsed to one space. An export that re-pads the same
// description therefore hashes the same. The digest is written as 16 lowercase hex
// digits after a namespace prefix: "v1-" for imported rows and "m1-" for
// manual entries. Stored hashes are never recomputed, so any change to this
// encoding needs a new version prefix.
//
// A 64-bit digest can collide. A collision makes a distinct transaction look
// like a duplicate and it is skipped; that trade-off is accepted.
package dedupe

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/Veraticus/budgetui/internal/model"
)

// Namespace prefixes.
const (
	ImportPrefix = "v1-"
	ManualPrefix = "m1-"
)

const separator = "\x1f"

// Hash returns the import hash of a candidate.
func Hash(c model.Candidate) string {
	return ImportPrefix + digest("v1", c)
}

// ManualHash returns a hash in the manual namespace. entryID distinguishes
// manual entries that are otherwise identical.
func ManualHash(c model.Candidate, entryID string) string {
	return ManualPrefix + digest("m1", c, entryID)
}

// IsManual reports whether hash belongs to the manual namespace.
func IsManual(hash string) bool {
	return strings.HasPrefix(hash, ManualPrefix)
}

func digest(version string, c model.Candidate, extra ...string) string {
	fields := []string{
		version,
		strconv.FormatInt(c.AccountID, 10),
		c.Date.Format(model.DateLayout),
		c.Description,
		c.Amount.StringFixed(2),
	}
	fields = append(fields, extra...)

	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(fields, separator)))
	return fmt.Sprintf("%016x", h.Sum64())
}
