package httpapi

import (
    "context"

    "github.com/tinoosan/bankaccounts/internal/service/account"
    "github.com/tinoosan/bankaccounts/internal/service/banking"
)

// ReadyChecker is implemented by stores to indicate readiness.
type ReadyChecker interface {
    Ready(ctx context.Context) error
}

// Store composes the repository and writer operations used by the API.
// It is a convenience union satisfied by the in-memory store.
type Store interface {
    account.Repo
    account.Writer
    banking.Repo
    banking.Writer
    ReadyChecker
}
