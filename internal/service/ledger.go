package service

import (
	"context"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
	"yemalin/internal/repository"
)

// Ledger учёт суммы покупок и VIP-уровня
type Ledger struct {
	users repository.UserRepository
	tx    repository.TxManager
}

func NewLedger(users repository.UserRepository, tx repository.TxManager) *Ledger {
	return &Ledger{users: users, tx: tx}
}

// ApplyPayment adds amount to the user's total spend and re-derives the tier
// from the new total. It joins the caller's transaction when there is one.
func (l *Ledger) ApplyPayment(ctx context.Context, userID string, amount decimal.Decimal) (*domain.User, error) {
	if userID == "" || amount.IsNegative() {
		return nil, ErrInvalidInput
	}
	var updated *domain.User
	err := l.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := l.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		u.TotalSpent = u.TotalSpent.Add(amount).Round(2)
		u.VIPTier = domain.TierFor(u.TotalSpent)
		if err := l.users.Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
