package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/ledger-extract/internal/domain"
)

// The model returns loosely-typed JSON. Payloads are validated here, once,
// at the service boundary; anything non-conforming fails the whole chunk
// rather than leaking an untyped value downstream.

func candidateFromPayload(obj map[string]interface{}, chunk int) (domain.Candidate, error) {
	var c domain.Candidate

	dateStr, err := getStringField(obj, "date", true)
	if err != nil {
		return c, err
	}
	date, err := parseDate(dateStr)
	if err != nil {
		return c, err
	}

	desc, err := getStringField(obj, "description", true)
	if err != nil {
		return c, err
	}

	amount, err := getFloat64Field(obj, "amount", true)
	if err != nil {
		return c, err
	}

	evidence, err := getStringField(obj, "evidence", true)
	if err != nil {
		return c, err
	}

	balance, err := getOptionalFloat64Field(obj, "balance")
	if err != nil {
		return c, err
	}
	txType, err := getOptionalStringField(obj, "transaction_type")
	if err != nil {
		return c, err
	}
	category, err := getOptionalStringField(obj, "category")
	if err != nil {
		return c, err
	}
	reference, err := getOptionalStringField(obj, "reference_number")
	if err != nil {
		return c, err
	}
	recurring, err := getOptionalBoolField(obj, "is_recurring")
	if err != nil {
		return c, err
	}

	c = domain.Candidate{
		Date:            date,
		Description:     desc,
		Amount:          decimal.NewFromFloat(amount),
		TransactionType: txType,
		CategoryLabel:   category,
		ReferenceNumber: reference,
		IsRecurring:     recurring,
		Evidence:        evidence,
		Chunk:           chunk,
	}
	if balance != nil {
		b := decimal.NewFromFloat(*balance)
		c.Balance = &b
	}
	return c, nil
}

// parseDate accepts the ISO date the schema asks for, plus full
// timestamps some models emit anyway.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func getStringField(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("missing required field %q", key)
		}
		return "", nil
	}
	switch val := v.(type) {
	case string:
		if required && strings.TrimSpace(val) == "" {
			return "", fmt.Errorf("required field %q is empty", key)
		}
		return val, nil
	default:
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
}

func getOptionalStringField(m map[string]interface{}, key string) (*string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		return &s, nil
	default:
		return nil, fmt.Errorf("field %q has type %T, want string or null", key, v)
	}
}

func getFloat64Field(m map[string]interface{}, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int: // unlikely from encoding/json, but harmless to support
		return float64(val), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}

func getOptionalFloat64Field(m map[string]interface{}, key string) (*float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case float64:
		f := val
		return &f, nil
	case int:
		f := float64(val)
		return &f, nil
	default:
		return nil, fmt.Errorf("field %q has type %T, want number or null", key, v)
	}
}

func getOptionalBoolField(m map[string]interface{}, key string) (bool, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return false, nil
	}
	switch val := v.(type) {
	case bool:
		return val, nil
	default:
		return false, fmt.Errorf("field %q has type %T, want boolean or null", key, v)
	}
}
