package model

import "time"

// ImportRun records one committed import for the history listing.
type ImportRun struct {
	CreatedAt   time.Time
	ID          string // uuid
	File        string
	Format      string
	AccountID   int64
	Total       int
	Duplicates  int
	Categorized int
	Inserted    int
}
