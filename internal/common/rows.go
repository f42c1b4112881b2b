package common

import (
	"fmt"
	"strconv"
	"strings"

	"fjacquet/autocat/internal/currencyutils"
	"fjacquet/autocat/internal/dateutils"
	"fjacquet/autocat/internal/models"
)

// TransactionRow is one line of a bank export to classify.
type TransactionRow struct {
	Date          string `csv:"date"`
	Description   string `csv:"description"`
	MerchantName  string `csv:"merchant_name"`
	Amount        string `csv:"amount"`
	Currency      string `csv:"currency"`
	Direction     string `csv:"direction"`
	MCCCode       string `csv:"mcc_code"`
	ReceiptText   string `csv:"receipt_text"`
	Industry      string `csv:"industry"`
	BusinessType  string `csv:"business_type"`
	AccountType   string `csv:"account_type"`
	DirectorNames string `csv:"director_names"`
}

// RowDefaults fill fields a row leaves empty.
type RowDefaults struct {
	Industry        string
	AccountType     models.AccountType
	DirectorNames   []string
	DirectorReliefs []models.ReliefType
}

// ToInput converts a row into a transaction input. Without an explicit
// direction, negative amounts are expenses and everything else is income.
func (r TransactionRow) ToInput(d RowDefaults) (models.TransactionInput, error) {
	amount, err := currencyutils.ParseAmount(r.Amount)
	if err != nil {
		return models.TransactionInput{}, err
	}
	date, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.TransactionInput{}, err
	}

	in := models.TransactionInput{
		Amount:          amount,
		Date:            date,
		Currency:        strings.ToUpper(strings.TrimSpace(r.Currency)),
		Description:     r.Description,
		MerchantName:    r.MerchantName,
		UserIndustry:    firstNonEmpty(r.Industry, d.Industry),
		BusinessType:    r.BusinessType,
		ReceiptText:     r.ReceiptText,
		AccountType:     models.AccountType(firstNonEmpty(r.AccountType, string(d.AccountType))),
		DirectorNames:   d.DirectorNames,
		DirectorReliefs: d.DirectorReliefs,
		MCCCode:         strings.TrimSpace(r.MCCCode),
	}
	if r.DirectorNames != "" {
		in.DirectorNames = splitList(r.DirectorNames)
	}

	switch strings.ToLower(strings.TrimSpace(r.Direction)) {
	case "":
		in.Direction = models.DirectionIncome
		if amount.IsNegative() {
			in.Direction = models.DirectionExpense
		}
	case "income", "credit", "in":
		in.Direction = models.DirectionIncome
	case "expense", "debit", "out":
		in.Direction = models.DirectionExpense
	default:
		return models.TransactionInput{}, fmt.Errorf("unknown direction %q", r.Direction)
	}
	return in, nil
}

// ResultRow is one classified line of output.
type ResultRow struct {
	Date                     string                 `csv:"date"`
	Description              string                 `csv:"description"`
	Amount                   string                 `csv:"amount"`
	Direction                string                 `csv:"direction"`
	Category                 string                 `csv:"category"`
	DBCategory               string                 `csv:"db_category"`
	VATType                  string                 `csv:"vat_type"`
	VATDeductible            bool                   `csv:"vat_deductible"`
	BusinessPurpose          string                 `csv:"business_purpose"`
	Confidence               int                    `csv:"confidence"`
	NeedsReview              bool                   `csv:"needs_review"`
	NeedsReceipt             bool                   `csv:"needs_receipt"`
	IsBusinessExpense        models.BusinessExpense `csv:"is_business_expense"`
	ReliefType               string                 `csv:"relief_type"`
	LooksLikeBusinessExpense string                 `csv:"looks_like_business_expense"`
	Vendor                   string                 `csv:"vendor"`
	MatchSource              string                 `csv:"match_source"`
	Notes                    string                 `csv:"notes"`
	Error                    string                 `csv:"error"`
}

// NewResultRow pairs an input row with its classification.
func NewResultRow(row TransactionRow, in models.TransactionInput, res models.AutoCatResult) ResultRow {
	out := ResultRow{
		Date:              dateutils.ToISODate(in.Date),
		Description:       row.Description,
		Amount:            in.Amount.StringFixed(2),
		Direction:         string(in.Direction),
		Category:          res.Category,
		VATType:           res.VATType,
		VATDeductible:     res.VATDeductible,
		BusinessPurpose:   res.BusinessPurpose,
		Confidence:        res.Confidence,
		NeedsReview:       res.NeedsReview,
		NeedsReceipt:      res.NeedsReceipt,
		IsBusinessExpense: res.IsBusinessExpense,
		ReliefType:        string(res.ReliefType),
		Vendor:            res.Vendor,
		MatchSource:       res.MatchSource,
		Notes:             strings.Join(res.Notes, "; "),
	}
	if res.LooksLikeBusinessExpense != nil {
		out.LooksLikeBusinessExpense = strconv.FormatBool(*res.LooksLikeBusinessExpense)
	}
	return out
}

// NewErrorRow records a row that could not be converted.
func NewErrorRow(row TransactionRow, err error) ResultRow {
	return ResultRow{
		Date:        row.Date,
		Description: row.Description,
		Amount:      row.Amount,
		NeedsReview: true,
		Error:       err.Error(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '|' }) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
