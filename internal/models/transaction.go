package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/shopspring/decimal"
)

// TransactionType is a closed enumeration. The caller states its intent
// explicitly; types are never parsed out of display labels.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeWithdraw
}

// ParseTransactionType converts user input into a TransactionType,
// returning a validation error for anything outside the enumeration.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown transaction type %q", common.ErrorValidation, s)
	}
	return t, nil
}

// Transaction is an immutable, dated record of a deposit or withdrawal.
// A nil StudentID means a classroom-level fund movement not attributed to
// any student. There is no update path: a transaction is created once and
// can only ever be deleted.
type Transaction struct {
	ID          string
	ClassroomID string
	StudentID   *string
	TreasurerID string
	Amount      decimal.Decimal
	Type        TransactionType
	Note        string
	CreatedAt   time.Time
}
