// Package categorise handles single transaction categorisation commands
package categorise

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/autocat/cmd/root"
	"fjacquet/autocat/internal/common"
	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"

	"github.com/spf13/cobra"
)

type options struct {
	Description         string
	Merchant            string
	Amount              string
	Date                string
	Direction           string
	Industry            string
	BusinessType        string
	BusinessDescription string
	AccountType         string
	MCC                 string
	Receipt             string
	Directors           []string
	Reliefs             []string
	JSON                bool
	NoCache             bool
}

var opts options

// Cmd represents the categorise command
var Cmd = &cobra.Command{
	Use:     "categorise",
	Aliases: []string{"categorize"},
	Short:   "Categorise a single transaction",
	Long: `Categorise one transaction from its description, amount and context.
The vendor cache is consulted first, then the built-in vendor rules and
merchant category codes.`,
	Example: `  autocat categorise -d "SCREWFIX DUBLIN" -a -84.50 --industry carpentry_joinery
  autocat categorise -d "VHI HEALTHCARE" -a -120 --account-type directors_personal_tax --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.OutOrStdout(), root.GetContainer(), opts)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Bank description of the transaction")
	Cmd.Flags().StringVarP(&opts.Merchant, "merchant", "m", "", "Merchant name from the card network (optional)")
	Cmd.Flags().StringVarP(&opts.Amount, "amount", "a", "", "Signed amount, negative for money out")
	Cmd.Flags().StringVarP(&opts.Date, "date", "t", "", "Transaction date (optional)")
	Cmd.Flags().StringVar(&opts.Direction, "direction", "", "income or expense (default from the amount sign)")
	Cmd.Flags().StringVar(&opts.Industry, "industry", "", "Your industry, e.g. carpentry_joinery")
	Cmd.Flags().StringVar(&opts.BusinessType, "business-type", "", "Free-text business type, e.g. \"Plumbing & Heating\"")
	Cmd.Flags().StringVar(&opts.BusinessDescription, "business-description", "", "Free-text description of what the business does")
	Cmd.Flags().StringVar(&opts.AccountType, "account-type", "", "limited_company or directors_personal_tax")
	Cmd.Flags().StringVar(&opts.MCC, "mcc", "", "Merchant category code")
	Cmd.Flags().StringVar(&opts.Receipt, "receipt", "", "Receipt text for line-item refinement")
	Cmd.Flags().StringSliceVar(&opts.Directors, "director", nil, "Director name (repeatable)")
	Cmd.Flags().StringSliceVar(&opts.Reliefs, "relief", nil, "Relief the director claims (repeatable)")
	Cmd.Flags().BoolVar(&opts.JSON, "json", false, "Print the result as JSON")
	Cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "Ignore the vendor cache")
	_ = Cmd.MarkFlagRequired("description")
}

func run(out io.Writer, c *container.Container, o options) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	in, err := buildInput(c, o)
	if err != nil {
		return err
	}

	var cache models.VendorCache
	if !o.NoCache {
		cache, err = c.GetStore().LoadVendorCache()
		if err != nil {
			return fmt.Errorf("failed to load vendor cache: %w", err)
		}
	}

	res := c.GetCategorizer().AutoCategorise(in, cache)
	logger.WithFields(
		logging.F(logging.FieldCategory, res.Category),
		logging.F(logging.FieldConfidence, res.Confidence),
	).Debug("Categorise command finished")

	if o.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(out, res)
	return nil
}

func buildInput(c *container.Container, o options) (models.TransactionInput, error) {
	row := common.TransactionRow{
		Date:          o.Date,
		Description:   o.Description,
		MerchantName:  o.Merchant,
		Amount:        o.Amount,
		Direction:     o.Direction,
		MCCCode:       o.MCC,
		ReceiptText:   o.Receipt,
		Industry:      o.Industry,
		BusinessType:  o.BusinessType,
		AccountType:   o.AccountType,
		DirectorNames: strings.Join(o.Directors, ";"),
	}
	in, err := row.ToInput(root.RowDefaults(c.GetConfig()))
	if err != nil {
		return models.TransactionInput{}, err
	}
	in.BusinessDescription = o.BusinessDescription

	if o.Reliefs != nil {
		in.DirectorReliefs = make([]models.ReliefType, 0, len(o.Reliefs))
		for _, r := range o.Reliefs {
			relief := models.ReliefType(strings.ToLower(strings.TrimSpace(r)))
			if relief == models.ReliefNone || !models.IsValidReliefType(relief) {
				return models.TransactionInput{}, fmt.Errorf("unknown relief %q", r)
			}
			in.DirectorReliefs = append(in.DirectorReliefs, relief)
		}
	}
	return in, nil
}

func printResult(out io.Writer, res models.AutoCatResult) {
	deductible := "not deductible"
	if res.VATDeductible {
		deductible = "deductible"
	}
	fmt.Fprintf(out, "Category:         %s\n", res.Category)
	fmt.Fprintf(out, "VAT:              %s (%s)\n", res.VATType, deductible)
	fmt.Fprintf(out, "Business expense: %s\n", res.IsBusinessExpense)
	fmt.Fprintf(out, "Purpose:          %s\n", res.BusinessPurpose)
	fmt.Fprintf(out, "Confidence:       %d\n", res.Confidence)
	fmt.Fprintf(out, "Needs review:     %t\n", res.NeedsReview)
	fmt.Fprintf(out, "Needs receipt:    %t\n", res.NeedsReceipt)
	if res.ReliefType != models.ReliefNone {
		fmt.Fprintf(out, "Relief:           %s\n", res.ReliefType)
	}
	if res.Vendor != "" {
		fmt.Fprintf(out, "Vendor:           %s (%s)\n", res.Vendor, res.MatchSource)
	}
	if len(res.Notes) > 0 {
		fmt.Fprintln(out, "Notes:")
		for _, n := range res.Notes {
			fmt.Fprintf(out, "  - %s\n", n)
		}
	}
}
