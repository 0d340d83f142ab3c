package extract

import (
	"google.golang.org/genai"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// transactionsSchema is the response schema for per-chunk transaction
// extraction: an object holding a "transactions" array. The evidence
// field is required so every candidate can be traced back to its source
// text.
func transactionsSchema() *genai.Schema {
	categories := make([]string, 0, len(domain.AllCategoryNames))
	for _, n := range domain.AllCategoryNames {
		categories = append(categories, domain.CategoryLabels[n])
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"transactions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": {
							Type:        genai.TypeString,
							Description: "Transaction date in ISO format YYYY-MM-DD.",
						},
						"description": {
							Type:        genai.TypeString,
							Description: "Description of the transaction as printed.",
						},
						"amount": {
							Type:        genai.TypeNumber,
							Description: "Signed amount: positive for money in, negative for money out.",
						},
						"balance": {
							Type:        genai.TypeNumber,
							Nullable:    genai.Ptr(true),
							Description: "Running account balance after this transaction, if printed.",
						},
						"transaction_type": {
							Type:        genai.TypeString,
							Nullable:    genai.Ptr(true),
							Description: "Type of transaction, e.g. deposit, withdrawal, payment.",
						},
						"category": {
							Type:        genai.TypeString,
							Nullable:    genai.Ptr(true),
							Enum:        categories,
							Description: "Spending category of the transaction.",
						},
						"reference_number": {
							Type:        genai.TypeString,
							Nullable:    genai.Ptr(true),
							Description: "Reference or transaction ID printed with this entry.",
						},
						"is_recurring": {
							Type:        genai.TypeBoolean,
							Description: "Whether this looks like a recurring transaction.",
						},
						"evidence": {
							Type:        genai.TypeString,
							Description: "The exact statement text this transaction was extracted from.",
						},
					},
					Required: []string{"date", "description", "amount", "evidence"},
				},
			},
		},
		Required: []string{"transactions"},
	}
}

// metadataSchema is the response schema for the statement-header call.
// Every field is nullable; absent information stays null, never guessed.
func metadataSchema() *genai.Schema {
	nullableString := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Nullable: genai.Ptr(true), Description: desc}
	}
	nullableNumber := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeNumber, Nullable: genai.Ptr(true), Description: desc}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"account_number":   nullableString("The account number associated with this statement."),
			"account_holder":   nullableString("The name of the account holder."),
			"bank_name":        nullableString("The name of the bank."),
			"statement_period": nullableString("The period covered by this statement."),
			"opening_balance":  nullableNumber("The opening balance for this statement period."),
			"closing_balance":  nullableNumber("The closing balance for this statement period."),
		},
	}
}
