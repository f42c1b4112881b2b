// Package cache manages the learned vendor cache
package cache

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"fjacquet/autocat/cmd/root"
	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"
	"fjacquet/autocat/internal/textutils"

	"github.com/spf13/cobra"
)

type addOptions struct {
	Pattern       string
	Description   string
	Vendor        string
	Category      string
	VATType       string
	VATDeductible bool
	Confidence    int
	Business      string
}

var addOpts addOptions

// Cmd represents the cache command
var Cmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage confirmed vendor classifications",
	Long: `Manage the vendor cache. Confirmed vendors are matched before any rule,
so a correction recorded here applies to every later transaction whose
description contains the pattern.`,
}

var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Record a confirmed vendor classification",
	Example: `  autocat cache add --pattern "murphy plant hire" --category "Equipment hire" --vat-type standard_23 --deductible --business true
  autocat cache add --from-description "POS12MAR MURPHY PLANT HIRE NAAS" --category "Equipment hire"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdd(cmd.OutOrStdout(), root.GetContainer(), addOpts)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached vendors",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.OutOrStdout(), root.GetContainer())
	},
}

func init() {
	addCmd.Flags().StringVarP(&addOpts.Pattern, "pattern", "p", "", "Description text identifying the vendor")
	addCmd.Flags().StringVar(&addOpts.Description, "from-description", "", "Raw bank description to derive the pattern from")
	addCmd.Flags().StringVar(&addOpts.Vendor, "vendor", "", "Display name (default the pattern)")
	addCmd.Flags().StringVarP(&addOpts.Category, "category", "c", "", "Internal category label")
	addCmd.Flags().StringVar(&addOpts.VATType, "vat-type", models.VATStandard, "VAT type label")
	addCmd.Flags().BoolVar(&addOpts.VATDeductible, "deductible", false, "Input VAT is deductible")
	addCmd.Flags().IntVar(&addOpts.Confidence, "confidence", models.ConfidenceExact, "Confidence to report for matches")
	addCmd.Flags().StringVar(&addOpts.Business, "business", "", "Business expense: true, false or empty for undetermined")
	addCmd.MarkFlagsOneRequired("pattern", "from-description")
	addCmd.MarkFlagsMutuallyExclusive("pattern", "from-description")
	_ = addCmd.MarkFlagRequired("category")

	Cmd.AddCommand(addCmd, listCmd)
}

func runAdd(out io.Writer, c *container.Container, o addOptions) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if o.Pattern == "" && o.Description != "" {
		o.Pattern = textutils.ExtractMerchant(o.Description)
		if o.Pattern == "" {
			return fmt.Errorf("no vendor name found in %q", o.Description)
		}
	}
	if strings.TrimSpace(o.Pattern) == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if strings.TrimSpace(o.Category) == "" {
		return fmt.Errorf("category must not be empty")
	}
	if !models.IsValidVATType(o.VATType) {
		return fmt.Errorf("unknown vat type %q", o.VATType)
	}
	if o.VATType == models.VATExempt && o.VATDeductible {
		return fmt.Errorf("exempt vat type cannot be deductible")
	}
	if o.Confidence < 0 || o.Confidence > 100 {
		return fmt.Errorf("confidence must be between 0 and 100, got %d", o.Confidence)
	}
	business, err := models.ParseBusinessExpense(strings.ToLower(strings.TrimSpace(o.Business)))
	if err != nil {
		return err
	}

	s := c.GetStore()
	vendorCache, err := s.LoadVendorCache()
	if err != nil {
		return fmt.Errorf("failed to load vendor cache: %w", err)
	}

	entry := store.Learn(vendorCache, models.VendorCacheEntry{
		Pattern:         o.Pattern,
		VendorName:      o.Vendor,
		Category:        o.Category,
		VATType:         o.VATType,
		VATDeductible:   o.VATDeductible,
		Confidence:      o.Confidence,
		BusinessExpense: business,
	})
	if err := s.SaveVendorCache(vendorCache); err != nil {
		return fmt.Errorf("failed to save vendor cache: %w", err)
	}

	c.GetLogger().WithFields(
		logging.F(logging.FieldVendor, entry.Pattern),
		logging.F(logging.FieldCategory, entry.Category),
		logging.F(logging.FieldCount, len(vendorCache)),
	).Info("Vendor cached")
	fmt.Fprintf(out, "Cached %q as %s (seen %d time(s))\n", entry.Pattern, entry.Category, entry.HitCount)
	return nil
}

func runList(out io.Writer, c *container.Container) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	vendorCache, err := c.GetStore().LoadVendorCache()
	if err != nil {
		return fmt.Errorf("failed to load vendor cache: %w", err)
	}
	if len(vendorCache) == 0 {
		fmt.Fprintln(out, "Vendor cache is empty")
		return nil
	}

	patterns := make([]string, 0, len(vendorCache))
	for p := range vendorCache {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tVENDOR\tCATEGORY\tVAT TYPE\tBUSINESS\tHITS")
	for _, p := range patterns {
		e := vendorCache[p]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", p, e.VendorName, e.Category, e.VATType, e.BusinessExpense, e.HitCount)
	}
	return w.Flush()
}
