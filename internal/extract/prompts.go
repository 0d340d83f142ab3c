package extract

import (
	"strings"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// transactionsPrompt builds the instruction block for per-chunk
// transaction extraction. The document text is sent as a separate part.
func transactionsPrompt() string {
	var b strings.Builder

	b.WriteString("You are an expert at extracting bank transaction data from bank statements.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Extract ALL transactions from the attached statement text with their details.\n")
	b.WriteString("- Be precise with dates, amounts, and descriptions.\n")
	b.WriteString("- If the amount is a withdrawal or debit, represent it as a negative number.\n")
	b.WriteString("- If the text has separate \"paid out\" / \"paid in\" columns, convert to a single signed amount.\n")
	b.WriteString("- If the running balance is not printed for an entry, set \"balance\" to null.\n")
	b.WriteString("- For each transaction, copy the exact source text into \"evidence\". Never leave it empty.\n")
	b.WriteString("- If no transactions can be found in the text, return an empty list.\n\n")

	b.WriteString("Classify each transaction into exactly one of the following categories:\n")
	for _, name := range domain.AllCategoryNames {
		b.WriteString("  - " + domain.CategoryLabels[name] + "\n")
	}
	b.WriteString("\nIf you are unsure which category applies, use \"Other\".\n")

	return b.String()
}

// metadataPrompt builds the instruction block for the statement-header
// call.
func metadataPrompt() string {
	var b strings.Builder

	b.WriteString("You are an expert at extracting metadata from bank statements.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Extract the account number, account holder name, bank name, statement period, opening balance, and closing balance.\n")
	b.WriteString("- Be precise and extract only factual information that appears in the text.\n")
	b.WriteString("- If certain information is not present, set those fields to null. Never guess.\n")

	return b.String()
}
