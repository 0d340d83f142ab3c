package notionsync

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// TransactionToNotionProperties maps one persisted transaction onto the
// Notion transaction database schema: Description (title), Date, Amount,
// Balance, Category, Type, Reference, Recurring, Evidence, Statement ID.
func TransactionToNotionProperties(tx *domain.Transaction, statementTitle string) notionapi.Properties {
	props := notionapi.Properties{
		"Description": notionapi.TitleProperty{
			Title: richText(tx.Description),
		},
		"Date": notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: notionDate(tx.Date),
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: tx.Amount.InexactFloat64(),
		},
		"Recurring": notionapi.CheckboxProperty{
			Checkbox: tx.IsRecurring,
		},
		"Evidence": notionapi.RichTextProperty{
			RichText: richText(tx.Evidence),
		},
		"Statement": notionapi.RichTextProperty{
			RichText: richText(statementTitle),
		},
	}

	if tx.Balance != nil {
		props["Balance"] = notionapi.NumberProperty{
			Number: tx.Balance.InexactFloat64(),
		}
	}
	if tx.Category != nil {
		props["Category"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: string(tx.Category.Name)},
		}
	}
	if tx.TransactionType != nil {
		props["Type"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: *tx.TransactionType},
		}
	}
	if tx.ReferenceNumber != nil {
		props["Reference"] = notionapi.RichTextProperty{
			RichText: richText(*tx.ReferenceNumber),
		}
	}

	return props
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: content},
		},
	}
}

func notionDate(t time.Time) *notionapi.Date {
	d := notionapi.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
	return &d
}
