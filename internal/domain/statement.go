package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statement is the top-level record for one uploaded bank statement and
// its extracted contents. A statement is owned by exactly one user and is
// only ever soft-deleted via IsActive.
type Statement struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AccountID   *uuid.UUID `gorm:"type:uuid"`
	Title       string     `gorm:"not null"`
	Description string     `gorm:"type:text"`
	IsActive    bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Metadata     *StatementMetadata `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
	Transactions []Transaction      `gorm:"foreignKey:StatementID;constraint:OnDelete:CASCADE"`
}

func (Statement) TableName() string {
	return "statements"
}

// StatementMetadata holds the statement-level fields recovered from the
// document header. Exactly one row exists per statement; every field the
// extractor could not establish stays nil rather than guessed.
type StatementMetadata struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	StatementID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	AccountNumber   *string          `gorm:"type:varchar(64)"`
	AccountHolder   *string          `gorm:"type:varchar(128)"`
	BankName        *string          `gorm:"type:varchar(128)"`
	StatementPeriod *string          `gorm:"type:varchar(128)"`
	OpeningBalance  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	ClosingBalance  *decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (StatementMetadata) TableName() string {
	return "statement_metadata"
}

// Transaction is one persisted ledger entry. Rows are owned by exactly one
// statement and are immutable after creation apart from category backfill.
// Evidence carries the literal source excerpt that justifies the extracted
// fields and is never empty.
type Transaction struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	StatementID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	AccountID       *uuid.UUID       `gorm:"type:uuid"`
	Date            time.Time        `gorm:"not null;index"`
	Description     string           `gorm:"type:text;not null"`
	Amount          decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Balance         *decimal.Decimal `gorm:"type:numeric(14,2)"`
	TransactionType *string          `gorm:"type:varchar(32)"`
	CategoryID      *uuid.UUID       `gorm:"type:uuid"`
	ReferenceNumber *string          `gorm:"type:varchar(64)"`
	IsRecurring     bool             `gorm:"not null;default:false"`
	Evidence        string           `gorm:"type:text;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}

func (Transaction) TableName() string {
	return "transactions"
}
