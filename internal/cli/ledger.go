package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/classfunds/internal/models"
	"github.com/dmitrijs2005/classfunds/internal/services"
	"github.com/shopspring/decimal"
)

// Deposit records a deposit in the selected classroom.
func (a *App) Deposit(ctx context.Context) error {
	return a.record(ctx, models.TransactionTypeDeposit)
}

// Withdraw records a withdrawal in the selected classroom.
func (a *App) Withdraw(ctx context.Context) error {
	return a.record(ctx, models.TransactionTypeWithdraw)
}

// record prompts for the transaction details and appends it to the ledger.
// An empty student id means a classroom-level fund movement.
func (a *App) record(ctx context.Context, txType models.TransactionType) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	studentID, err := getSimpleText(a.reader, "Enter student id (empty for a classroom-level movement)", os.Stdout)
	if err != nil {
		return err
	}
	amountText, err := getSimpleText(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		printlnFn("Amount must be a number, e.g. 12.50")
		return err
	}
	note, err := getSimpleText(a.reader, "Enter note (optional)", os.Stdout)
	if err != nil {
		return err
	}

	params := services.RecordTransactionParams{
		Amount: amount,
		Type:   txType,
		Note:   note,
	}
	if studentID != "" {
		params.StudentID = &studentID
	}

	tx, err := a.ledger.RecordTransaction(ctx, actorID, a.classroomID, params)
	if err != nil {
		a.logger.Error(ctx, "recording transaction failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	printlnFn(fmt.Sprintf("Recorded %s of %s (%s)", tx.Type, tx.Amount.StringFixed(2), tx.ID))
	return nil
}

// Remove deletes a transaction from the selected classroom's ledger.
func (a *App) Remove(ctx context.Context, transactionID string) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	if err := a.ledger.DeleteTransaction(ctx, actorID, a.classroomID, transactionID); err != nil {
		a.logger.Error(ctx, "deleting transaction failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Transaction removed.")
	return nil
}

// Balance prints the classroom balance, or a student's balance when a
// student id is given.
func (a *App) Balance(ctx context.Context, args []string) error {
	if _, err := a.actorID(ctx); err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	var balance decimal.Decimal
	var err error
	if len(args) > 0 {
		balance, err = a.ledger.StudentBalance(ctx, a.classroomID, args[0])
	} else {
		balance, err = a.ledger.ClassroomBalance(ctx, a.classroomID)
	}
	if err != nil {
		a.logger.Error(ctx, "reading balance failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Balance:", balance.StringFixed(2))
	return nil
}

// History prints the transactions recorded by a treasurer, newest first.
// Without arguments it shows the logged-in user's own history.
func (a *App) History(ctx context.Context, args []string) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	treasurerID := actorID
	if len(args) > 0 {
		treasurerID = args[0]
	}

	txs, err := a.ledger.TreasurerHistory(ctx, actorID, a.classroomID, treasurerID)
	if err != nil {
		a.logger.Error(ctx, "reading history failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	if len(txs) == 0 {
		printlnFn("No transactions.")
		return nil
	}
	for _, tx := range txs {
		target := "classroom"
		if tx.StudentID != nil {
			target = *tx.StudentID
		}
		printlnFn(fmt.Sprintf("%s  %-8s %10s  %-12s %s",
			tx.ID, tx.Type, tx.Amount.StringFixed(2), target, tx.Note))
	}
	return nil
}
