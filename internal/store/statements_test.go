package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func testTransaction(t *testing.T, date, desc string, amount string) domain.Transaction {
	t.Helper()
	return domain.Transaction{
		Date:        day(t, date),
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Evidence:    date + " " + desc + " " + amount,
	}
}

func TestCreateStatementPersistsFullAggregate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	cat, err := s.ResolveCategory(ctx, strPtr("Utilities"))
	if err != nil {
		t.Fatalf("ResolveCategory() error = %v", err)
	}

	bank := "First National Bank"
	opening := decimal.RequireFromString("1500.25")
	tx1 := testTransaction(t, "2024-03-15", "ELECTRIC CO PAYMENT", "-120.00")
	tx1.CategoryID = &cat.ID
	tx2 := testTransaction(t, "2024-03-02", "PAYROLL DEPOSIT", "2500.00")

	stmt, err := s.CreateStatement(ctx, NewStatement{
		OwnerID: owner,
		Title:   "March 2024",
		Metadata: domain.StatementMetadata{
			BankName:       &bank,
			OpeningBalance: &opening,
		},
		Transactions: []domain.Transaction{tx1, tx2},
	})
	if err != nil {
		t.Fatalf("CreateStatement() error = %v", err)
	}

	if stmt.Title != "March 2024" || !stmt.IsActive {
		t.Errorf("statement = %+v, want active with title March 2024", stmt)
	}
	if stmt.Metadata == nil || stmt.Metadata.BankName == nil || *stmt.Metadata.BankName != bank {
		t.Errorf("metadata not hydrated: %+v", stmt.Metadata)
	}
	if len(stmt.Transactions) != 2 {
		t.Fatalf("statement has %d transactions, want 2", len(stmt.Transactions))
	}
	// Hydration orders by date regardless of insert order.
	if stmt.Transactions[0].Description != "PAYROLL DEPOSIT" {
		t.Errorf("first transaction = %q, want the earlier-dated deposit", stmt.Transactions[0].Description)
	}
	got := stmt.Transactions[1]
	if got.Category == nil || got.Category.Name != domain.CategoryUtilities {
		t.Errorf("categorized transaction not hydrated with its category: %+v", got.Category)
	}
	if !got.Amount.Equal(decimal.RequireFromString("-120.00")) {
		t.Errorf("amount = %s, want -120.00", got.Amount)
	}
}

func TestCreateStatementRollsBackOnEmptyEvidence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bad := testTransaction(t, "2024-03-10", "MYSTERY ROW", "-5.00")
	bad.Evidence = "   "

	_, err := s.CreateStatement(ctx, NewStatement{
		OwnerID: uuid.New(),
		Title:   "Broken run",
		Transactions: []domain.Transaction{
			testTransaction(t, "2024-03-09", "COFFEE SHOP", "-4.50"),
			bad,
		},
	})
	if err == nil {
		t.Fatal("CreateStatement() accepted a transaction with empty evidence")
	}

	// Nothing from the failed write may remain visible.
	var stmts, txs int64
	if err := s.db.Model(&domain.Statement{}).Count(&stmts).Error; err != nil {
		t.Fatalf("count statements: %v", err)
	}
	if err := s.db.Model(&domain.Transaction{}).Count(&txs).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if stmts != 0 || txs != 0 {
		t.Errorf("rollback left %d statements and %d transactions behind", stmts, txs)
	}
}

func TestCreateStatementAllowsZeroTransactions(t *testing.T) {
	s := openTestStore(t)

	stmt, err := s.CreateStatement(context.Background(), NewStatement{
		OwnerID: uuid.New(),
		Title:   "Metadata only",
	})
	if err != nil {
		t.Fatalf("CreateStatement() error = %v", err)
	}
	if len(stmt.Transactions) != 0 {
		t.Errorf("statement has %d transactions, want 0", len(stmt.Transactions))
	}
	if stmt.Description != "Extracted bank statement data" {
		t.Errorf("default description = %q", stmt.Description)
	}
}

func TestCreateStatementTwiceKeepsRunsIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	in := NewStatement{
		OwnerID:      owner,
		Title:        "March 2024",
		Transactions: []domain.Transaction{testTransaction(t, "2024-03-02", "PAYROLL DEPOSIT", "2500.00")},
	}

	first, err := s.CreateStatement(ctx, in)
	if err != nil {
		t.Fatalf("first CreateStatement() error = %v", err)
	}
	in.Transactions = []domain.Transaction{testTransaction(t, "2024-03-02", "PAYROLL DEPOSIT", "2500.00")}
	second, err := s.CreateStatement(ctx, in)
	if err != nil {
		t.Fatalf("second CreateStatement() error = %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("repeated ingest reused the same statement row")
	}
	list, err := s.ListStatements(ctx, owner)
	if err != nil {
		t.Fatalf("ListStatements() error = %v", err)
	}
	if len(list) != 2 {
		t.Errorf("owner sees %d statements, want 2 independent rows", len(list))
	}
}

func TestGetStatementScopesOwnerAndActive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	stmt, err := s.CreateStatement(ctx, NewStatement{OwnerID: owner, Title: "Mine"})
	if err != nil {
		t.Fatalf("CreateStatement() error = %v", err)
	}

	if _, err := s.GetStatement(ctx, stmt.ID, uuid.New()); err == nil {
		t.Error("GetStatement() returned a statement to a non-owner")
	}

	if err := s.SoftDeleteStatement(ctx, stmt.ID, owner); err != nil {
		t.Fatalf("SoftDeleteStatement() error = %v", err)
	}
	if _, err := s.GetStatement(ctx, stmt.ID, owner); err == nil {
		t.Error("GetStatement() returned a soft-deleted statement")
	}
	list, err := s.ListStatements(ctx, owner)
	if err != nil {
		t.Fatalf("ListStatements() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListStatements() returned %d rows after soft delete, want 0", len(list))
	}
}

func TestSoftDeleteStatementMissingRow(t *testing.T) {
	s := openTestStore(t)

	if err := s.SoftDeleteStatement(context.Background(), uuid.New(), uuid.New()); err == nil {
		t.Error("SoftDeleteStatement() succeeded for a row that does not exist")
	}
}
