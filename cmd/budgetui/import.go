package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/config"
	"github.com/Veraticus/budgetui/internal/fieldparse"
	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/model"
)

// Column flags that, when any is set, replace format detection.
var mappingFlags = []string{"date-col", "desc-col", "amount-col", "debit-col", "credit-col", "original-col"}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from bank CSV, TSV, OFX or QFX exports",
		Long: `Import transactions from the files your bank lets you download.

Known bank layouts are recognized automatically. For anything else, pass the
column positions (zero-based) with the mapping flags. Rows already imported
into the account are skipped, and rules assign categories as rows come in.

Examples:
  # Import one statement into the only account
  budgetui import ~/Downloads/activity.csv

  # Import a year of statements into a named account
  budgetui import --account "Amex Gold" ~/Downloads/amex_*.csv

  # Import an unrecognized layout
  budgetui import --date-col 0 --desc-col 2 --amount-col 4 --date-format YYYY-MM-DD export.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("account", "a", "", "account to import into (default: import.default_account, or the only account)")
	cmd.Flags().Bool("dry-run", false, "run every step except saving and show what would be imported")

	cmd.Flags().Int("date-col", model.NoColumn, "column holding the date")
	cmd.Flags().Int("desc-col", model.NoColumn, "column holding the description")
	cmd.Flags().Int("amount-col", model.NoColumn, "column holding a signed amount")
	cmd.Flags().Int("debit-col", model.NoColumn, "column holding money out")
	cmd.Flags().Int("credit-col", model.NoColumn, "column holding money in")
	cmd.Flags().Int("original-col", model.NoColumn, "column holding the untruncated description")
	cmd.Flags().String("date-format", "", "date format for mapped columns: MM/DD/YYYY, YYYY-MM-DD, MM-DD-YYYY, MM/DD/YY, DD/MM/YYYY")
	cmd.Flags().Bool("header", false, "first row of a mapped file is a header; --header=false reads it as data")
	cmd.Flags().Bool("keep-sign", false, "amounts already read negative for money out, even on credit accounts")
	cmd.Flags().String("label", "", "name shown for the mapped layout in summaries and history")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	mapping, err := mappingFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	account, _ := cmd.Flags().GetString("account")
	if account == "" {
		account = cfg.Import.DefaultAccount
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	label, _ := cmd.Flags().GetString("label")
	header := headerFromFlags(cmd)

	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), "Import")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	imp := importer.New(store)
	out := cmd.OutOrStdout()

	var bar interface{ Add(int) error }
	if len(files) > 1 {
		bar = cli.NewImportProgress(cmd.ErrOrStderr(), len(files))
	}

	var failed int
	for _, file := range files {
		if ctx.Err() != nil {
			break
		}

		req := importer.Request{
			Path:    file,
			Account: account,
			Mapping: mapping,
			Label:   label,
			Header:  header,
			DryRun:  dryRun,
		}
		result, err := imp.Run(ctx, req)
		if err != nil && mapping == nil && importer.IsKind(err, importer.UnknownFormat) {
			slog.Warn("Unrecognized layout, assuming date, description, amount columns",
				"file", file)
			fallback := defaultMapping(cfg.DateFormat())
			req.Mapping = &fallback
			result, err = imp.Run(ctx, req)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
		if err != nil {
			failed++
			common.LogError(err, "Import failed", common.Fields{"file": file})
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatError(fmt.Sprintf("%s: %s", file, common.UserMessage(err))))
			continue
		}
		_, _ = fmt.Fprintln(out, cli.RenderImportResult(result))
	}

	if interruptHandler.WasInterrupted() {
		return common.ErrCanceled
	}
	if failed > 0 {
		return common.NewUserError(fmt.Sprintf("%d of %d files failed to import", failed, len(files)), nil)
	}
	return nil
}

// headerFromFlags returns the --header value when it was given explicitly, so
// it can override header sniffing in either direction.
func headerFromFlags(cmd *cobra.Command) *bool {
	if !cmd.Flags().Changed("header") {
		return nil
	}
	header, _ := cmd.Flags().GetBool("header")
	return &header
}

// defaultMapping reads date, description and a signed amount from the first
// three columns.
func defaultMapping(format fieldparse.DateFormat) model.ColumnMapping {
	return model.SingleAmountMapping(0, 1, 2, format)
}

// mappingFromFlags builds the override mapping, or returns nil when no column
// flag was given. An unset date or description column defaults to 0 or 1, and
// with neither debit nor credit the amount defaults to column 2.
func mappingFromFlags(cmd *cobra.Command, cfg *config.Config) (*model.ColumnMapping, error) {
	changed := false
	for _, name := range mappingFlags {
		if cmd.Flags().Changed(name) {
			changed = true
			break
		}
	}
	if !changed {
		return nil, nil
	}

	get := func(name string, fallback int) int {
		if !cmd.Flags().Changed(name) {
			return fallback
		}
		v, _ := cmd.Flags().GetInt(name)
		return v
	}

	format := cfg.DateFormat()
	if s, _ := cmd.Flags().GetString("date-format"); s != "" {
		parsed, err := fieldparse.ParseDateFormat(s)
		if err != nil {
			return nil, common.NewUserError("invalid --date-format", err)
		}
		format = parsed
	}

	date := get("date-col", 0)
	desc := get("desc-col", 1)
	debit := get("debit-col", model.NoColumn)
	credit := get("credit-col", model.NoColumn)

	var mapping model.ColumnMapping
	if debit != model.NoColumn || credit != model.NoColumn {
		mapping = model.SplitAmountMapping(date, desc, debit, credit, format)
		if cmd.Flags().Changed("amount-col") {
			mapping.Amount = get("amount-col", model.NoColumn)
		}
	} else {
		mapping = model.SingleAmountMapping(date, desc, get("amount-col", 2), format)
	}
	mapping.OriginalDescription = get("original-col", model.NoColumn)
	mapping.HasHeader, _ = cmd.Flags().GetBool("header")
	mapping.KeepSign, _ = cmd.Flags().GetBool("keep-sign")

	if err := mapping.Validate(); err != nil {
		return nil, common.NewUserError("invalid column mapping", err)
	}
	return &mapping, nil
}
