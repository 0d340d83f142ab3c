package extract

import (
	"strings"
	"testing"
	"time"
)

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"date":             "2024-03-01",
		"description":      "STARBUCKS #123",
		"amount":           -5.75,
		"balance":          1000.00,
		"transaction_type": "payment",
		"category":         "Food & Dining",
		"reference_number": "REF-001",
		"is_recurring":     false,
		"evidence":         "01 Mar STARBUCKS #123 -5.75 1,000.00",
	}
}

func TestCandidateFromPayloadValid(t *testing.T) {
	c, err := candidateFromPayload(validPayload(), 3)
	if err != nil {
		t.Fatalf("candidateFromPayload() error = %v", err)
	}

	if got := c.Date.Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("Date = %s, want 2024-03-01", got)
	}
	if c.Description != "STARBUCKS #123" {
		t.Errorf("Description = %q", c.Description)
	}
	if c.Amount.String() != "-5.75" {
		t.Errorf("Amount = %s, want -5.75", c.Amount)
	}
	if c.Balance == nil || c.Balance.String() != "1000" {
		t.Errorf("Balance = %v, want 1000", c.Balance)
	}
	if c.CategoryLabel == nil || *c.CategoryLabel != "Food & Dining" {
		t.Errorf("CategoryLabel = %v", c.CategoryLabel)
	}
	if c.ReferenceNumber == nil || *c.ReferenceNumber != "REF-001" {
		t.Errorf("ReferenceNumber = %v", c.ReferenceNumber)
	}
	if c.Evidence == "" {
		t.Error("Evidence is empty")
	}
	if c.Chunk != 3 {
		t.Errorf("Chunk = %d, want 3", c.Chunk)
	}
}

func TestCandidateFromPayloadOptionalFieldsNull(t *testing.T) {
	p := validPayload()
	p["balance"] = nil
	delete(p, "transaction_type")
	p["category"] = nil
	p["reference_number"] = "  "
	delete(p, "is_recurring")

	c, err := candidateFromPayload(p, 0)
	if err != nil {
		t.Fatalf("candidateFromPayload() error = %v", err)
	}
	if c.Balance != nil || c.TransactionType != nil || c.CategoryLabel != nil || c.ReferenceNumber != nil {
		t.Errorf("optional fields not nil: %+v", c)
	}
	if c.IsRecurring {
		t.Error("IsRecurring = true, want false default")
	}
}

func TestCandidateFromPayloadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantErr string
	}{
		{"missing date", func(p map[string]interface{}) { delete(p, "date") }, "date"},
		{"invalid date", func(p map[string]interface{}) { p["date"] = "March 1st" }, "invalid date"},
		{"missing description", func(p map[string]interface{}) { delete(p, "description") }, "description"},
		{"missing amount", func(p map[string]interface{}) { delete(p, "amount") }, "amount"},
		{"amount wrong type", func(p map[string]interface{}) { p["amount"] = "-5.75" }, "amount"},
		{"missing evidence", func(p map[string]interface{}) { delete(p, "evidence") }, "evidence"},
		{"empty evidence", func(p map[string]interface{}) { p["evidence"] = "   " }, "evidence"},
		{"balance wrong type", func(p map[string]interface{}) { p["balance"] = "1000" }, "balance"},
		{"recurring wrong type", func(p map[string]interface{}) { p["is_recurring"] = "yes" }, "is_recurring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(p)
			if _, err := candidateFromPayload(p, 0); err == nil {
				t.Fatal("candidateFromPayload() error = nil, want error")
			} else if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseDateAcceptsTimestampFallback(t *testing.T) {
	got, err := parseDate("2024-03-01T00:00:00Z")
	if err != nil {
		t.Fatalf("parseDate() error = %v", err)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate() = %v, want %v", got, want)
	}
}

func TestMetadataFromPayloadPartial(t *testing.T) {
	meta, err := metadataFromPayload(map[string]interface{}{
		"account_number":  "12345678",
		"bank_name":       nil,
		"opening_balance": 250.00,
	})
	if err != nil {
		t.Fatalf("metadataFromPayload() error = %v", err)
	}
	if meta.AccountNumber == nil || *meta.AccountNumber != "12345678" {
		t.Errorf("AccountNumber = %v", meta.AccountNumber)
	}
	if meta.BankName != nil || meta.AccountHolder != nil || meta.StatementPeriod != nil {
		t.Errorf("absent fields not nil: %+v", meta)
	}
	if meta.OpeningBalance == nil || meta.OpeningBalance.String() != "250" {
		t.Errorf("OpeningBalance = %v, want 250", meta.OpeningBalance)
	}
	if meta.ClosingBalance != nil {
		t.Errorf("ClosingBalance = %v, want nil", meta.ClosingBalance)
	}
}

func TestMetadataFromPayloadRejectsWrongTypes(t *testing.T) {
	if _, err := metadataFromPayload(map[string]interface{}{"opening_balance": "250"}); err == nil {
		t.Fatal("metadataFromPayload() error = nil, want type error")
	}
}
