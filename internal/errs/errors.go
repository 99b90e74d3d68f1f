package errs

import (
    "errors"
    "fmt"
)

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    // ErrInvalid marks malformed or missing input (HTTP 400).
    ErrInvalid = errors.New("invalid")
    // ErrInvalidAmount is returned for non-positive amounts.
    ErrInvalidAmount = errors.New("amount must be positive")
    // ErrInsufficientFunds indicates a debit larger than the available balance.
    ErrInsufficientFunds = errors.New("insufficient funds")
    // ErrBalanceOverflow rejects credits the balance cannot hold.
    ErrBalanceOverflow = fmt.Errorf("%w: balance would overflow", ErrInvalidAmount)
    // ErrSameAccount rejects transfers whose source and destination match.
    ErrSameAccount = fmt.Errorf("%w: cannot transfer to the same account", ErrInvalid)
)
