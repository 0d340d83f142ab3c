package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// metadataHeadChars bounds the leading slice of text sent to the
// metadata call. Statement-level fields live in the header region.
const metadataHeadChars = 4000

// DefaultCallTimeout bounds one structured extraction call.
const DefaultCallTimeout = 60 * time.Second

// MetadataExtractor runs the single structured call that recovers
// statement-level fields. Its failure is non-fatal to the pipeline:
// callers log and continue with all-nil metadata.
type MetadataExtractor struct {
	gen     Generator
	timeout time.Duration
}

func NewMetadataExtractor(gen Generator, timeout time.Duration) *MetadataExtractor {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &MetadataExtractor{gen: gen, timeout: timeout}
}

// Extract runs the header call over the leading slice of text. Fields the
// model could not establish stay nil.
func (e *MetadataExtractor) Extract(ctx context.Context, text string) (*domain.StatementMetadata, error) {
	head := text
	if len(head) > metadataHeadChars {
		head = head[:metadataHeadChars]
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	out, err := e.gen.GenerateJSON(cctx, metadataPrompt(), head, metadataSchema())
	if err != nil {
		return nil, fmt.Errorf("MetadataExtractor.Extract: %w", err)
	}

	meta, err := metadataFromPayload(out)
	if err != nil {
		return nil, fmt.Errorf("MetadataExtractor.Extract: %w", err)
	}
	return meta, nil
}

func metadataFromPayload(obj map[string]interface{}) (*domain.StatementMetadata, error) {
	accountNumber, err := getOptionalStringField(obj, "account_number")
	if err != nil {
		return nil, err
	}
	accountHolder, err := getOptionalStringField(obj, "account_holder")
	if err != nil {
		return nil, err
	}
	bankName, err := getOptionalStringField(obj, "bank_name")
	if err != nil {
		return nil, err
	}
	period, err := getOptionalStringField(obj, "statement_period")
	if err != nil {
		return nil, err
	}
	opening, err := getOptionalFloat64Field(obj, "opening_balance")
	if err != nil {
		return nil, err
	}
	closing, err := getOptionalFloat64Field(obj, "closing_balance")
	if err != nil {
		return nil, err
	}

	meta := &domain.StatementMetadata{
		AccountNumber:   accountNumber,
		AccountHolder:   accountHolder,
		BankName:        bankName,
		StatementPeriod: period,
	}
	if opening != nil {
		d := decimal.NewFromFloat(*opening)
		meta.OpeningBalance = &d
	}
	if closing != nil {
		d := decimal.NewFromFloat(*closing)
		meta.ClosingBalance = &d
	}
	return meta, nil
}
