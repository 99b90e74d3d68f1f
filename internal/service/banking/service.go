package banking

import (
    "context"

    "github.com/tinoosan/bankaccounts/internal/errs"
    "github.com/tinoosan/bankaccounts/internal/ledger"
)

// Repo defines read operations needed by the service.
type Repo interface {
    GetAccount(ctx context.Context, number int64) (ledger.Account, error)
    Transactions(ctx context.Context, number int64) ([]ledger.Transaction, error)
}

// Writer defines the balance mutations needed by the service.
type Writer interface {
    Deposit(ctx context.Context, number, amount int64) (ledger.Account, error)
    Withdraw(ctx context.Context, number, amount int64) (ledger.Account, error)
    Transfer(ctx context.Context, from, to, amount int64) (ledger.Account, ledger.Account, error)
}

// Service exposes deposits, withdrawals, transfers and account history.
type Service interface {
    Deposit(ctx context.Context, number, amount int64) (ledger.Account, error)
    Withdraw(ctx context.Context, number, amount int64) (ledger.Account, error)
    Transfer(ctx context.Context, from, to, amount int64) (ledger.Account, ledger.Account, error)
    History(ctx context.Context, number int64) ([]ledger.Transaction, error)
}

type service struct {
    repo   Repo
    writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

// Deposit credits an account. An unknown account is reported before a bad amount.
func (s *service) Deposit(ctx context.Context, number, amount int64) (ledger.Account, error) {
    if _, err := s.repo.GetAccount(ctx, number); err != nil {
        return ledger.Account{}, err
    }
    if amount <= 0 {
        return ledger.Account{}, errs.ErrInvalidAmount
    }
    return s.writer.Deposit(ctx, number, amount)
}

// Withdraw debits an account if the balance covers the amount.
func (s *service) Withdraw(ctx context.Context, number, amount int64) (ledger.Account, error) {
    if _, err := s.repo.GetAccount(ctx, number); err != nil {
        return ledger.Account{}, err
    }
    if amount <= 0 {
        return ledger.Account{}, errs.ErrInvalidAmount
    }
    return s.writer.Withdraw(ctx, number, amount)
}

// Transfer moves funds between two existing, distinct accounts.
// Funds sufficiency is judged by the store under its lock.
func (s *service) Transfer(ctx context.Context, from, to, amount int64) (ledger.Account, ledger.Account, error) {
    for _, n := range [...]int64{from, to} {
        if _, err := s.repo.GetAccount(ctx, n); err != nil {
            return ledger.Account{}, ledger.Account{}, err
        }
    }
    if amount <= 0 {
        return ledger.Account{}, ledger.Account{}, errs.ErrInvalidAmount
    }
    if from == to {
        return ledger.Account{}, ledger.Account{}, errs.ErrSameAccount
    }
    return s.writer.Transfer(ctx, from, to, amount)
}

// History returns the account's transactions, oldest first.
func (s *service) History(ctx context.Context, number int64) ([]ledger.Transaction, error) {
    return s.repo.Transactions(ctx, number)
}
