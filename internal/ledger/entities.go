package ledger

import (
    "time"

    "github.com/google/uuid"
)

// TransactionKind classifies a balance movement recorded against an account.
type TransactionKind string

const (
	// KindDeposit credits an account from outside the ledger.
	KindDeposit TransactionKind = "deposit"
	// KindWithdrawal debits an account to outside the ledger.
	KindWithdrawal TransactionKind = "withdrawal"
	// KindTransferIn is the credit side of a transfer between two accounts.
	KindTransferIn TransactionKind = "transfer_in"
	// KindTransferOut is the debit side of a transfer between two accounts.
	KindTransferOut TransactionKind = "transfer_out"
)

// Account is a customer account held by the ledger store.
type Account struct {
    // Number is the account number; assigned at creation and never changed.
    Number   int64
    Name     string
    // Balance is kept in whole currency units.
    Balance  int64
    // BVNVerified reports whether a BVN has been attached.
    BVNVerified bool
    // BVN is non-nil if and only if BVNVerified is true.
    BVN       *string
    CreatedAt time.Time
    UpdatedAt time.Time
}

// Clone returns a copy that shares no pointers with a.
func (a Account) Clone() Account {
    if a.BVN != nil {
        v := *a.BVN
        a.BVN = &v
    }
    return a
}

// AccountPatch carries the fields of a partial update; nil means untouched.
type AccountPatch struct {
    Name            *string
    BVNVerification *bool
}

// Transaction is an entry in an account's history.
type Transaction struct {
    ID            uuid.UUID
    AccountNumber int64
    Kind          TransactionKind
    Amount        int64
    // Counterparty is the other account of a transfer; nil otherwise.
    Counterparty  *int64
    BalanceAfter  int64
    CreatedAt     time.Time
}
