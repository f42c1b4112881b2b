// Package vat exposes the Irish VAT helpers on the command line
package vat

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/autocat/internal/currencyutils"
	"fjacquet/autocat/internal/models"
	vatrules "fjacquet/autocat/internal/vat"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	rate      string
	currency  string
	category  string
	account   string
	industry  string
	direction string
	amount    string
)

// Cmd represents the vat command
var Cmd = &cobra.Command{
	Use:   "vat",
	Short: "Irish VAT calculations and deductibility checks",
	Long: `Irish VAT helpers: extract VAT from a gross amount, apply the two-thirds
rule to a mixed supply, check whether input VAT on a purchase is deductible
and suggest the VAT treatment for a transaction.`,
}

var grossCmd = &cobra.Command{
	Use:   "gross <amount>",
	Short: "Split a VAT-inclusive amount into net and VAT",
	Example: `  autocat vat gross 123.00 --rate 23
  autocat vat gross 113.50 --rate reduced_13_5 --currency EUR`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGross(cmd.OutOrStdout(), args[0], rate, currency)
	},
}

var twoThirdsCmd = &cobra.Command{
	Use:     "two-thirds <parts-value> <total-value>",
	Short:   "Apply the two-thirds rule to a mixed supply of goods and services",
	Example: `  autocat vat two-thirds 700 1000`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTwoThirds(cmd.OutOrStdout(), args[0], args[1])
	},
}

var checkCmd = &cobra.Command{
	Use:     "check <description>",
	Short:   "Check whether input VAT on a purchase can be reclaimed",
	Example: `  autocat vat check "APPLEGREEN NAAS PETROL" --category Motor/travel`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), args[0], category, account)
	},
}

var treatmentCmd = &cobra.Command{
	Use:     "treatment <description>",
	Short:   "Suggest the VAT rate and recoverability for a transaction",
	Example: `  autocat vat treatment "WOODIES DIY" --amount -650 --industry carpentry_joinery`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTreatment(cmd.OutOrStdout(), args[0], amount, industry, direction)
	},
}

func init() {
	grossCmd.Flags().StringVarP(&rate, "rate", "r", models.VATStandard, "VAT rate as a percentage or a rate label")
	grossCmd.Flags().StringVar(&currency, "currency", "", "Currency code to print with amounts (e.g. EUR)")
	checkCmd.Flags().StringVarP(&category, "category", "c", "", "Internal category of the purchase")
	checkCmd.Flags().StringVar(&account, "account", "", "Account or payee name")
	treatmentCmd.Flags().StringVarP(&amount, "amount", "a", "0", "Signed amount")
	treatmentCmd.Flags().StringVar(&industry, "industry", "", "Your industry")
	treatmentCmd.Flags().StringVar(&direction, "direction", "", "income or expense (default from the amount sign)")

	Cmd.AddCommand(grossCmd, twoThirdsCmd, checkCmd, treatmentCmd)
}

func runGross(out io.Writer, grossStr, rateStr, currency string) error {
	gross, err := currencyutils.ParseAmount(grossStr)
	if err != nil {
		return err
	}

	var b vatrules.Breakdown
	if percent, ok := parsePercent(rateStr); ok {
		b = vatrules.CalculateVATFromGrossRate(gross, percent)
	} else {
		b = vatrules.CalculateVATFromGross(gross, rateStr)
	}

	fmt.Fprintf(out, "Gross: %s\n", currencyutils.FormatAmount(b.Gross, currency))
	fmt.Fprintf(out, "Net:   %s\n", currencyutils.FormatAmount(b.Net, currency))
	fmt.Fprintf(out, "VAT:   %s\n", currencyutils.FormatAmount(b.VAT, currency))
	fmt.Fprintf(out, "Rate:  %s%%\n", b.Rate.String())
	return nil
}

// parsePercent accepts "23", "13.5" and "13.5%".
func parsePercent(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func runTwoThirds(out io.Writer, partsStr, totalStr string) error {
	parts, err := currencyutils.ParseAmount(partsStr)
	if err != nil {
		return err
	}
	total, err := currencyutils.ParseAmount(totalStr)
	if err != nil {
		return err
	}

	res := vatrules.ApplyTwoThirdsRule(parts, total)
	supply := "services"
	if res.IsGoods {
		supply = "goods"
	}
	fmt.Fprintf(out, "Taxed as: %s\n", supply)
	fmt.Fprintf(out, "Rate:     %s\n", res.ApplicableRate)
	fmt.Fprintf(out, "Reason:   %s\n", res.Explanation)
	return nil
}

func runCheck(out io.Writer, description, category, account string) error {
	d := vatrules.IsVATDeductible(description, category, account)
	verdict := "not deductible"
	if d.IsDeductible {
		verdict = "deductible"
	}
	fmt.Fprintf(out, "Input VAT: %s\n", verdict)
	fmt.Fprintf(out, "Rule:      %s\n", d.Rule)
	if d.Section != "" {
		fmt.Fprintf(out, "Section:   %s\n", d.Section)
	}
	fmt.Fprintf(out, "Reason:    %s\n", d.Reason)
	return nil
}

func runTreatment(out io.Writer, description, amountStr, industry, directionStr string) error {
	amt, err := currencyutils.ParseAmount(amountStr)
	if err != nil {
		return err
	}

	var dir models.Direction
	switch strings.ToLower(strings.TrimSpace(directionStr)) {
	case "":
		dir = models.DirectionExpense
		if amt.IsPositive() {
			dir = models.DirectionIncome
		}
	case string(models.DirectionIncome):
		dir = models.DirectionIncome
	case string(models.DirectionExpense):
		dir = models.DirectionExpense
	default:
		return fmt.Errorf("unknown direction %q", directionStr)
	}

	t := vatrules.DetermineVatTreatment(description, amt, industry, dir)
	fmt.Fprintf(out, "Recoverable:    %t\n", t.IsVATRecoverable)
	fmt.Fprintf(out, "Suggested rate: %s\n", t.SuggestedRate)
	fmt.Fprintf(out, "Needs receipt:  %t\n", t.NeedsReceipt)
	fmt.Fprintf(out, "Explanation:    %s\n", t.Explanation)
	for _, w := range t.Warnings {
		fmt.Fprintf(out, "Warning:        %s\n", w)
	}
	return nil
}
