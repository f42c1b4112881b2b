// Package rules inspects and validates the vendor, MCC and category name tables
package rules

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/autocat/cmd/root"
	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/parsererror"
	"fjacquet/autocat/internal/store"

	"github.com/spf13/cobra"
)

type tableFiles struct {
	Vendors       string
	MCC           string
	CategoryNames string
}

var files tableFiles

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate the rule tables",
	Long: `Inspect and validate the vendor, merchant category code and category name
tables. Without override files the tables embedded in the binary are used.`,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check rule table files and report every problem found",
	Example: `  autocat rules validate
  autocat rules validate --vendors my_vendors.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.OutOrStdout(), root.GetContainer(), files)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the vendor rules in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return listVendors(cmd.OutOrStdout(), c.GetRuleTables())
	},
}

func init() {
	validateCmd.Flags().StringVar(&files.Vendors, "vendors", "", "Vendor table to validate")
	validateCmd.Flags().StringVar(&files.MCC, "mcc", "", "MCC table to validate")
	validateCmd.Flags().StringVar(&files.CategoryNames, "category-names", "", "Category name table to validate")

	Cmd.AddCommand(validateCmd, listCmd)
}

func runValidate(out io.Writer, c *container.Container, f tableFiles) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	cfg := c.GetConfig()
	logger := c.GetLogger()

	f.Vendors = firstNonEmpty(f.Vendors, cfg.Rules.VendorsFile)
	f.MCC = firstNonEmpty(f.MCC, cfg.Rules.MCCFile)
	f.CategoryNames = firstNonEmpty(f.CategoryNames, cfg.Rules.CategoryNamesFile)

	s := store.NewRuleStore(f.Vendors, f.MCC, f.CategoryNames, cfg.Cache.File, logger)
	for _, path := range []string{f.Vendors, f.MCC, f.CategoryNames} {
		if path == "" {
			continue
		}
		if _, err := s.FindConfigFile(path); err != nil {
			return fmt.Errorf("rule table %s not found", path)
		}
	}

	tables, err := s.LoadRuleTables()
	if err != nil {
		if !parsererror.IsValidation(err) {
			return fmt.Errorf("rule tables could not be read: %w", err)
		}
		var verrs parsererror.ValidationErrors
		if !errors.As(err, &verrs) {
			var ve *parsererror.ValidationError
			errors.As(err, &ve)
			verrs = parsererror.ValidationErrors{ve}
		}
		fmt.Fprintf(out, "Found %d problem(s):\n", len(verrs))
		for _, v := range verrs {
			fmt.Fprintf(out, "  - %s\n", v.Error())
		}
		logger.WithField(logging.FieldCount, len(verrs)).Warn("Rule tables failed validation")
		return fmt.Errorf("rule tables failed validation")
	}

	fmt.Fprintf(out, "Rule tables OK (version %s): %d vendors, %d MCC codes, %d category labels\n",
		tables.Version, len(tables.Vendors), len(tables.MCC), len(tables.CategoryNames))
	return nil
}

func listVendors(out io.Writer, tables *store.RuleTables) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VENDOR\tCATEGORY\tVAT TYPE\tDEDUCTIBLE\tPATTERNS")
	for _, v := range tables.Vendors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
			v.Name, v.Category, v.VATType, v.VATDeductible, strings.Join(v.Patterns, ", "))
	}
	return w.Flush()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
