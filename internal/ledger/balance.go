// Package ledger contains the pure balance derivation functions.
//
// A balance is always recomputed from a snapshot of transactions fetched
// within one logical operation. It is never persisted as a running counter,
// so a cached total can never drift from the transaction log.
package ledger

import (
	"fmt"

	"github.com/dmitrijs2005/classfunds/internal/common"
	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/shopspring/decimal"
)

// Balance returns the signed total of the given transactions:
// the sum of deposits minus the sum of withdrawals. The empty set yields
// zero. A transaction whose type is outside the enumeration is a
// data-integrity failure and aborts the computation; a silently wrong
// balance is worse than a visible error.
func Balance(txs []*models.Transaction) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeDeposit:
			total = total.Add(tx.Amount)
		case models.TransactionTypeWithdraw:
			total = total.Sub(tx.Amount)
		default:
			return decimal.Zero, fmt.Errorf("%w: transaction %s has unknown type %q",
				common.ErrorValidation, tx.ID, tx.Type)
		}
	}
	return total, nil
}

// BalancesByStudent derives per-student balances in one pass over a
// prefetched classroom transaction set, avoiding one balance query per
// student. Classroom-level transactions (nil student id) are excluded from
// every per-student sum. Students without transactions are absent from the
// map; callers treat absence as zero.
func BalancesByStudent(txs []*models.Transaction) (map[string]decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.StudentID == nil {
			if !tx.Type.Valid() {
				return nil, fmt.Errorf("%w: transaction %s has unknown type %q",
					common.ErrorValidation, tx.ID, tx.Type)
			}
			continue
		}
		current := balances[*tx.StudentID]
		switch tx.Type {
		case models.TransactionTypeDeposit:
			balances[*tx.StudentID] = current.Add(tx.Amount)
		case models.TransactionTypeWithdraw:
			balances[*tx.StudentID] = current.Sub(tx.Amount)
		default:
			return nil, fmt.Errorf("%w: transaction %s has unknown type %q",
				common.ErrorValidation, tx.ID, tx.Type)
		}
	}
	return balances, nil
}
