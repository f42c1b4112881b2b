// Package matchcategory resolves an internal category label to one of the
// user's own category names
package matchcategory

import (
	"fmt"
	"io"

	"fjacquet/autocat/cmd/root"
	"fjacquet/autocat/internal/common"
	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/models"

	"github.com/spf13/cobra"
)

type options struct {
	Label          string
	CategoriesFile string
	Direction      string
	AccountType    string
}

var opts options

// Cmd represents the match-category command
var Cmd = &cobra.Command{
	Use:   "match-category <label>",
	Short: "Find your category row for an internal category label",
	Long: `Find the row in your own category list that best matches an internal
category label. Exact names win, then the label's known alternative names in
priority order. Rows are first limited to those usable on the account type.

The categories file is a CSV with columns name, type and account_type.`,
	Example: `  autocat match-category Medical --categories categories.csv --account-type directors_personal_tax`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opts
		o.Label = args[0]
		return run(cmd.OutOrStdout(), root.GetContainer(), o)
	},
}

func init() {
	Cmd.Flags().StringVarP(&opts.CategoriesFile, "categories", "c", "", "CSV of your category rows")
	Cmd.Flags().StringVar(&opts.Direction, "direction", "", "Only match rows of this type (income or expense)")
	Cmd.Flags().StringVar(&opts.AccountType, "account-type", "", "limited_company or directors_personal_tax")
	_ = Cmd.MarkFlagRequired("categories")
}

func run(out io.Writer, c *container.Container, o options) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}

	rows, err := common.ReadCSVFile[models.DBCategory](o.CategoriesFile, c.GetConfig().Delimiter(), c.GetLogger())
	if err != nil {
		return err
	}

	match, ok := c.GetResolver().FindMatchingCategory(o.Label, rows,
		models.Direction(o.Direction), models.AccountType(o.AccountType))
	if !ok {
		return fmt.Errorf("no category matches %q", o.Label)
	}

	fmt.Fprintln(out, match.Name)
	return nil
}
