package services

import (
	"context"
	"fmt"

	"dayboard/internal/core"
	"dayboard/internal/snapshot"
	"dayboard/internal/storage"
)

// ExpenseService owns expense mutations.
type ExpenseService struct {
	storage  *storage.SQLiteRepository
	notifier WidgetNotifier
}

func NewExpenseService(storage *storage.SQLiteRepository, notifier WidgetNotifier) *ExpenseService {
	return &ExpenseService{storage: storage, notifier: notifier}
}

// CreateExpense saves an expense and refreshes the finance widget.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	created, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.notify(ctx, "expense_created")
	return created, nil
}

// DeleteExpense removes an expense and refreshes the finance widget.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.notify(ctx, "expense_deleted")
	return nil
}

// ExpensesForDate lists the expenses recorded on a date.
func (s *ExpenseService) ExpensesForDate(ctx context.Context, date core.Date) ([]core.Expense, error) {
	return s.storage.ExpensesForDate(ctx, date)
}

func (s *ExpenseService) notify(ctx context.Context, reason string) {
	if s.notifier != nil {
		s.notifier.WidgetChanged(ctx, snapshot.KindFinance, reason)
	}
}
