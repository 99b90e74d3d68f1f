// Package account implements the account lifecycle rules: validated creation,
// partial updates, and hard deletes.
package account

import (
    "context"
    "fmt"
    "strings"

    "github.com/tinoosan/bankaccounts/internal/errs"
    "github.com/tinoosan/bankaccounts/internal/ledger"
)

type Repo interface {
    ListAccounts(ctx context.Context) ([]ledger.Account, error)
    GetAccount(ctx context.Context, number int64) (ledger.Account, error)
}

type Writer interface {
    CreateAccount(ctx context.Context, name string, initialBalance int64) (ledger.Account, error)
    UpdateAccount(ctx context.Context, number int64, p ledger.AccountPatch) (ledger.Account, error)
    DeleteAccount(ctx context.Context, number int64) error
}

// CreateInput is the validated payload for opening an account.
type CreateInput struct {
    Name    string
    Balance int64
}

type Service interface {
    ValidateCreate(in CreateInput) error
    Create(ctx context.Context, in CreateInput) (ledger.Account, error)
    List(ctx context.Context) ([]ledger.Account, error)
    Get(ctx context.Context, number int64) (ledger.Account, error)
    Update(ctx context.Context, number int64, p ledger.AccountPatch) (ledger.Account, error)
    Delete(ctx context.Context, number int64) error
}

type service struct {
    repo   Repo
    writer Writer
}

func New(repo Repo, writer Writer) Service { return &service{repo: repo, writer: writer} }

func (s *service) ValidateCreate(in CreateInput) error {
    if strings.TrimSpace(in.Name) == "" {
        return fmt.Errorf("%w: name is required", errs.ErrInvalid)
    }
    if in.Balance < 0 {
        return fmt.Errorf("%w: balance must not be negative", errs.ErrInvalid)
    }
    return nil
}

func (s *service) Create(ctx context.Context, in CreateInput) (ledger.Account, error) {
    if err := s.ValidateCreate(in); err != nil {
        return ledger.Account{}, err
    }
    return s.writer.CreateAccount(ctx, strings.TrimSpace(in.Name), in.Balance)
}

func (s *service) List(ctx context.Context) ([]ledger.Account, error) {
    return s.repo.ListAccounts(ctx)
}

func (s *service) Get(ctx context.Context, number int64) (ledger.Account, error) {
    return s.repo.GetAccount(ctx, number)
}

// Update applies name and BVN verification changes. A nil field is left as is.
func (s *service) Update(ctx context.Context, number int64, p ledger.AccountPatch) (ledger.Account, error) {
    if p.Name != nil {
        name := strings.TrimSpace(*p.Name)
        if name == "" { return ledger.Account{}, fmt.Errorf("%w: name must not be empty", errs.ErrInvalid) }
        p.Name = &name
    }
    return s.writer.UpdateAccount(ctx, number, p)
}

// Delete removes the account permanently.
func (s *service) Delete(ctx context.Context, number int64) error {
    return s.writer.DeleteAccount(ctx, number)
}
