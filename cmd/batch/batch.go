// Package batch handles CSV batch categorisation commands
package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/autocat/cmd/root"
	"fjacquet/autocat/internal/common"
	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/fileutils"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/report"
	"fjacquet/autocat/internal/validation"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// outputSuffix is appended to each file name in directory mode.
const outputSuffix = "_categorised"

type options struct {
	Input          string
	Output         string
	CategoriesFile string
	Report         string
	ReportFormat   string
	NoProgress     bool
	NoCache        bool
}

var (
	categoriesFile string
	reportFile     string
	reportFormat   string
	noProgress     bool
	noCache        bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Categorise every transaction in a CSV file or directory",
	Long: `Categorise every transaction in a CSV export and write one result row per
input row. Rows that cannot be read are kept in the output with the error.
When the input is a directory, every .csv file in it is categorised into the
output directory as <name>_categorised.csv.

Input columns: date, description, merchant_name, amount, currency, direction,
mcc_code, receipt_text, industry, business_type, account_type, director_names.
Only description and amount are required.

With --categories, each result is also resolved to one of your own category
names (CSV columns: name, type, account_type) in the db_category column.
With --report, a summary of the run is written as JSON or YAML.`,
	Example: `  autocat batch -i transactions.csv -o categorised.csv
  autocat batch -i statements/ -o categorised/ --report summary.yaml --report-format yaml
  autocat batch -i transactions.csv --categories my_categories.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := options{
			Input:          root.SharedFlags.Input,
			Output:         root.SharedFlags.Output,
			CategoriesFile: categoriesFile,
			Report:         reportFile,
			ReportFormat:   reportFormat,
			NoProgress:     noProgress,
			NoCache:        noCache,
		}
		return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), root.GetContainer(), o)
	},
}

func init() {
	Cmd.Flags().StringVar(&categoriesFile, "categories", "", "CSV of your category names for db_category resolution")
	Cmd.Flags().StringVar(&reportFile, "report", "", "Write a run summary to this file")
	Cmd.Flags().StringVar(&reportFormat, "report-format", "json", "Summary format (json or yaml)")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Hide the progress bar")
	Cmd.Flags().BoolVar(&noCache, "no-cache", false, "Ignore the vendor cache")
}

// processor carries what every file in a run shares.
type processor struct {
	c            *container.Container
	logger       logging.Logger
	delimiter    rune
	defaults     common.RowDefaults
	dbCategories []models.DBCategory
	cache        models.VendorCache
	summary      *report.Summary
	progressOut  io.Writer
	noProgress   bool
}

func run(ctx context.Context, out, progressOut io.Writer, c *container.Container, o options) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if o.Input == "" {
		return fmt.Errorf("input file is required (--input)")
	}
	if err := validation.IsValidPath(o.Input); err != nil {
		return err
	}
	if o.Report != "" {
		if err := validation.IsValidReportFormat(o.ReportFormat); err != nil {
			return err
		}
	}
	if o.CategoriesFile != "" && !fileutils.FileExists(o.CategoriesFile) {
		return fmt.Errorf("categories file not found: %s", o.CategoriesFile)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := c.GetConfig()
	p := &processor{
		c:           c,
		logger:      c.GetLogger(),
		delimiter:   cfg.Delimiter(),
		defaults:    root.RowDefaults(cfg),
		summary:     report.NewSummary(time.Now()),
		progressOut: progressOut,
		noProgress:  o.NoProgress,
	}

	var err error
	if o.CategoriesFile != "" {
		p.dbCategories, err = common.ReadCSVFile[models.DBCategory](o.CategoriesFile, p.delimiter, p.logger)
		if err != nil {
			return fmt.Errorf("failed to read categories: %w", err)
		}
	}
	if !o.NoCache {
		p.cache, err = c.GetStore().LoadVendorCache()
		if err != nil {
			return fmt.Errorf("failed to load vendor cache: %w", err)
		}
	}

	if fileutils.DirectoryExists(o.Input) {
		err = p.processDirectory(ctx, o.Input, o.Output)
	} else {
		err = p.processFile(ctx, o.Input, o.Output, out)
	}
	if err != nil {
		return err
	}

	if o.Report != "" {
		data, err := report.NewReportGenerator(p.logger).GenerateReport(p.summary, o.ReportFormat)
		if err != nil {
			return err
		}
		if err := fileutils.WriteFile(o.Report, data, 0644); err != nil {
			return err
		}
		p.logger.WithField(logging.FieldOutputFile, o.Report).Info("Wrote batch summary")
	}
	return nil
}

func (p *processor) processDirectory(ctx context.Context, inputDir, outputDir string) error {
	if outputDir == "" {
		return fmt.Errorf("output directory is required when the input is a directory (--output)")
	}
	files, err := fileutils.ListFilesWithExtension(inputDir, ".csv")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found in %s", inputDir)
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return err
	}

	for _, file := range files {
		if err := p.processFile(ctx, file, fileutils.OutputPath(file, outputDir, outputSuffix), nil); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	p.logger.WithFields(
		logging.F(logging.FieldInputFile, inputDir),
		logging.F(logging.FieldCount, len(files)),
	).Info("Directory categorisation complete")
	return nil
}

// processFile categorises one CSV file. With no output path the rows are
// written to out.
func (p *processor) processFile(ctx context.Context, input, output string, out io.Writer) error {
	rows, err := common.ReadCSVFile[common.TransactionRow](input, p.delimiter, p.logger)
	if err != nil {
		return err
	}

	results := make([]common.ResultRow, len(rows))
	inputs := make([]models.TransactionInput, 0, len(rows))
	positions := make([]int, 0, len(rows))
	for i, row := range rows {
		in, err := row.ToInput(p.defaults)
		if err != nil {
			p.logger.WithFields(
				logging.F(logging.FieldInputFile, input),
				logging.F("row", i+1),
				logging.F(logging.FieldError, err.Error()),
			).Warn("Skipping unreadable row")
			results[i] = common.NewErrorRow(row, err)
			continue
		}
		inputs = append(inputs, in)
		positions = append(positions, i)
	}

	progress, finish := newProgress(p.progressOut, len(inputs), p.noProgress)
	result, err := p.c.GetRunner().Classify(ctx, inputs, p.cache, progress)
	finish()
	if err != nil {
		return err
	}

	resolver := p.c.GetResolver()
	for j, res := range result.Results {
		i := positions[j]
		in := inputs[j]
		row := common.NewResultRow(rows[i], in, res)
		if len(p.dbCategories) > 0 {
			if match, ok := resolver.FindMatchingCategory(res.Category, p.dbCategories, in.Direction, in.AccountType); ok {
				row.DBCategory = match.Name
			}
		}
		results[i] = row
	}
	unreadable := len(rows) - len(inputs)
	p.summary.Add(result.ID, input, inputs, result.Results, unreadable)

	if output == "" {
		if err := common.WriteCSV(out, results, p.delimiter); err != nil {
			return err
		}
	} else if err := common.WriteCSVFile(output, results, p.delimiter, p.logger); err != nil {
		return err
	}

	p.logger.WithFields(
		logging.F(logging.FieldRunID, result.ID),
		logging.F(logging.FieldInputFile, input),
		logging.F(logging.FieldCount, len(rows)),
		logging.F("needs_review", result.NeedsReview),
		logging.F("unreadable", unreadable),
	).Info("Batch categorisation complete")
	return nil
}

// newProgress returns a progress callback for the runner and a function that
// completes the bar.
func newProgress(w io.Writer, total int, hidden bool) (func(done, total int), func()) {
	if hidden || total == 0 || w == nil {
		return nil, func() {}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Categorising transactions"),
		progressbar.OptionClearOnFinish(),
	)
	update := func(done, _ int) {
		_ = bar.Set(done)
	}
	return update, func() {
		_ = bar.Finish()
	}
}
