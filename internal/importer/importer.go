// Package importer runs the import pipeline: detect, map, parse, dedupe,
// categorize and commit.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Veraticus/budgetui/internal/dedupe"
	"github.com/Veraticus/budgetui/internal/detect"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/normalize"
	"github.com/Veraticus/budgetui/internal/pattern"
	"github.com/Veraticus/budgetui/internal/table"
)

// CustomFormat labels runs that use a caller-supplied mapping.
const CustomFormat = "Custom"

// Store is the record store an import needs.
type Store interface {
	GetAccounts(ctx context.Context) ([]model.Account, error)
	GetImportRules(ctx context.Context) ([]model.ImportRule, error)
	ExistingHashes(ctx context.Context, accountID int64) (map[string]struct{}, error)
	CommitImport(ctx context.Context, run *model.ImportRun, transactions []model.Transaction) (int, error)
}

// Request describes one import.
type Request struct {
	// Table is used instead of reading Path when set.
	Table *table.Table
	// Mapping overrides format detection.
	Mapping *model.ColumnMapping
	Path    string
	Account string
	// Header, when set, decides whether an override mapping skips the first
	// row, overriding both the mapping and header sniffing.
	Header *bool
	// Label names the override mapping in the result. Defaults to CustomFormat.
	Label  string
	DryRun bool
}

// Result summarizes an import run.
type Result struct {
	RunID             string
	Format            string
	File              string
	Account           model.Account
	SuggestedRules    []string
	RowErrors         []error
	TotalParsed       int
	DuplicatesSkipped int
	AutoCategorized   int
	Inserted          int
	Stage             Stage
	DryRun            bool
}

// Failed is the number of rows that could not be parsed.
func (r *Result) Failed() int {
	return len(r.RowErrors)
}

// Config holds configuration options for the importer.
type Config struct {
	Detector       *detect.Detector
	Logger         *slog.Logger
	NewRunID       func() string
	ReadTable      func(path string) (*table.Table, error)
	MaxSuggestions int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		NewRunID:       uuid.NewString,
		ReadTable:      table.ReadFile,
		MaxSuggestions: pattern.MaxSuggestions,
	}
}

// Importer runs imports against a store. It holds no per-run state, so one
// Importer may serve concurrent runs.
type Importer struct {
	store          Store
	detector       *detect.Detector
	logger         *slog.Logger
	newRunID       func() string
	readTable      func(path string) (*table.Table, error)
	maxSuggestions int
}

// New creates an importer with the default configuration.
func New(store Store) *Importer {
	return NewWithConfig(store, DefaultConfig())
}

// NewWithConfig creates an importer with custom configuration. Zero fields
// fall back to their defaults.
func NewWithConfig(store Store, config Config) *Importer {
	defaults := DefaultConfig()
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Detector == nil {
		config.Detector = detect.NewDetector(config.Logger)
	}
	if config.NewRunID == nil {
		config.NewRunID = defaults.NewRunID
	}
	if config.ReadTable == nil {
		config.ReadTable = defaults.ReadTable
	}
	if config.MaxSuggestions <= 0 {
		config.MaxSuggestions = defaults.MaxSuggestions
	}
	return &Importer{
		store:          store,
		detector:       config.Detector,
		logger:         config.Logger,
		newRunID:       config.NewRunID,
		readTable:      config.ReadTable,
		maxSuggestions: config.MaxSuggestions,
	}
}

// run carries the state of one pipeline execution.
type run struct {
	logger  *slog.Logger
	result  *Result
	table   *table.Table
	mapping model.ColumnMapping
	stage   Stage
}

func (r *run) advance(stage Stage) {
	r.logger.Debug("Import stage", "from", r.stage, "to", stage)
	r.stage = stage
	r.result.Stage = stage
}

func (r *run) fail(kind Kind, err error) error {
	r.logger.Debug("Import aborted", "stage", r.stage, "kind", kind, "error", err)
	return &Error{Kind: kind, Stage: r.stage, Err: err}
}

// Run executes one import. Unparseable rows are skipped and reported in the
// result; any other failure returns an *Error and commits nothing. With
// DryRun every stage except the commit runs.
func (im *Importer) Run(ctx context.Context, req Request) (*Result, error) {
	file := req.Path
	if file != "" {
		file = filepath.Base(file)
	} else if req.Table != nil {
		file = req.Table.Source
	}

	r := &run{
		logger: im.logger.With("file", file),
		result: &Result{File: file, DryRun: req.DryRun},
	}

	// Detecting
	t := req.Table
	if t == nil {
		var err error
		t, err = im.readTable(req.Path)
		if err != nil {
			return nil, r.fail(UnreadableSource, err)
		}
	}
	r.table = t

	accounts, err := im.store.GetAccounts(ctx)
	if err != nil {
		return nil, r.fail(StorageReadFailure, err)
	}
	account, err := ResolveAccount(accounts, req.Account)
	if err != nil {
		return nil, r.fail(NoAccountResolved, err)
	}
	r.result.Account = *account
	r.logger = r.logger.With("account", account.Name)

	if err := im.resolveMapping(r, req); err != nil {
		return nil, err
	}
	r.advance(StageMapped)

	r.advance(StageParsing)
	normalizer, err := normalize.New(r.mapping, *account, r.table.ColumnNames())
	if err != nil {
		return nil, r.fail(UnknownFormat, err)
	}
	candidates, rowErrs := normalizer.Table(r.table)
	for _, rowErr := range rowErrs {
		r.logger.Warn("Skipping row", "error", rowErr)
	}
	r.result.TotalParsed = len(candidates)
	r.result.RowErrors = rowErrs

	r.advance(StageDeduplicating)
	existing, err := im.store.ExistingHashes(ctx, account.ID)
	if err != nil {
		return nil, r.fail(StorageReadFailure, err)
	}
	fresh, duplicates := dedupe.Filter(candidates, existing)
	r.result.DuplicatesSkipped = duplicates

	r.advance(StageCategorizing)
	rules, err := im.Rules(ctx)
	if err != nil {
		return nil, r.fail(StorageReadFailure, err)
	}
	suggester := pattern.NewSuggester(rules.Rules(), im.maxSuggestions)
	transactions := make([]model.Transaction, 0, len(fresh))
	for _, h := range fresh {
		c := h.Candidate
		if c.CategoryID == nil {
			if id, ok := CategorizeOne(c, rules); ok {
				c.CategoryID = &id
				r.result.AutoCategorized++
			} else {
				suggester.Add(c.Description)
			}
		}
		transactions = append(transactions, c.ToTransaction(h.Hash))
	}
	r.result.SuggestedRules = suggester.Suggestions()

	if req.DryRun {
		r.result.Inserted = 0
		im.logSummary(r)
		return r.result, nil
	}

	record := &model.ImportRun{
		ID:          im.newRunID(),
		AccountID:   account.ID,
		File:        file,
		Format:      r.result.Format,
		Total:       r.result.TotalParsed,
		Duplicates:  r.result.DuplicatesSkipped,
		Categorized: r.result.AutoCategorized,
	}
	inserted, err := im.store.CommitImport(ctx, record, transactions)
	if err != nil {
		return nil, r.fail(StorageCommitFailure, err)
	}
	r.result.RunID = record.ID
	r.result.Inserted = inserted
	// Rows another import committed after the dedupe check count as duplicates.
	r.result.DuplicatesSkipped += len(transactions) - inserted
	r.advance(StageCommitted)

	im.logSummary(r)
	return r.result, nil
}

// resolveMapping applies the override mapping or runs format detection.
func (im *Importer) resolveMapping(r *run, req Request) error {
	if req.Mapping != nil {
		mapping := *req.Mapping
		mapping.HasHeader = mapping.HasHeader || r.table.HasHeader
		if req.Header != nil {
			mapping.HasHeader = *req.Header
		}
		if mapping.HasHeader != r.table.HasHeader {
			r.table = &table.Table{Source: r.table.Source, Rows: r.table.Rows, HasHeader: mapping.HasHeader}
		}
		if err := mapping.Validate(); err != nil {
			return r.fail(UnknownFormat, err)
		}
		r.mapping = mapping
		r.result.Format = req.Label
		if r.result.Format == "" {
			r.result.Format = CustomFormat
		}
		return nil
	}

	guess := im.detector.Detect(r.table)
	if guess == nil {
		return r.fail(UnknownFormat, fmt.Errorf("no known layout matches %d columns; supply a column mapping", r.table.Width()))
	}
	r.mapping = guess.Mapping
	r.result.Format = guess.Label

	if guess.Hint != "" && guess.Hint.IsLiability() != r.result.Account.Type.IsLiability() {
		r.logger.Warn("Detected format is usually for a different account type",
			"format", guess.Label,
			"expected", guess.Hint,
			"actual", r.result.Account.Type)
	}
	return nil
}

func (im *Importer) logSummary(r *run) {
	r.logger.Info("Import finished",
		"format", r.result.Format,
		"parsed", r.result.TotalParsed,
		"failed", r.result.Failed(),
		"duplicates", r.result.DuplicatesSkipped,
		"categorized", r.result.AutoCategorized,
		"inserted", r.result.Inserted,
		"dry_run", r.result.DryRun)
}

// Rules loads a snapshot of the stored rules.
func (im *Importer) Rules(ctx context.Context) (*pattern.RuleSet, error) {
	rules, err := im.store.GetImportRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load import rules: %w", err)
	}
	return pattern.NewRuleSet(rules)
}

// CategorizeOne returns the category the first matching rule assigns to c.
func CategorizeOne(c model.Candidate, rules pattern.Categorizer) (int64, bool) {
	if rules == nil {
		return 0, false
	}
	return rules.Categorize(c.Description, c.MatchText())
}
