package httpapi

import (
    "bytes"
    "encoding/json"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/tinoosan/bankaccounts/internal/ledger"
)

// intValue accepts a JSON integer or a string holding one, e.g. 50 or "50".
// Fractions, exponents and other text mark the value Invalid rather than
// failing the decode, so handlers decide when to report it.
type intValue struct {
    Value   int64
    Set     bool
    Invalid bool
}

func (v *intValue) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if bytes.Equal(b, []byte("null")) {
        return nil
    }
    v.Set = true
    raw := string(b)
    if strings.HasPrefix(raw, `"`) {
        if err := json.Unmarshal(b, &raw); err != nil {
            v.Invalid = true
            return nil
        }
        raw = strings.TrimSpace(raw)
    }
    n, err := strconv.ParseInt(raw, 10, 64)
    if err != nil {
        v.Invalid = true
        return nil
    }
    v.Value = n
    return nil
}

// Valid reports whether a whole number was supplied.
func (v intValue) Valid() bool { return v.Set && !v.Invalid }

// orZero yields the parsed value, or 0 when missing or unparseable. Zero is
// never a usable amount or account number, so the service rejects it only
// after the accounts it can resolve.
func (v intValue) orZero() int64 {
    if !v.Valid() {
        return 0
    }
    return v.Value
}

type postAccountRequest struct {
    Name           *string  `json:"name"`
    Balance        intValue `json:"balance"`
    // InitialBalance is accepted as an alias of Balance.
    InitialBalance intValue `json:"initialBalance"`
}

type updateAccountRequest struct {
    Name            *string `json:"name"`
    BVNVerification *bool   `json:"bvnVerification"`
}

type amountRequest struct {
    Amount intValue `json:"amount"`
}

type transferRequest struct {
    ToAccountNumber intValue `json:"toAccountNumber"`
    Amount          intValue `json:"amount"`
}

// transferInput is the validated transfer body.
type transferInput struct {
    To     int64
    Amount int64
}

type accountResponse struct {
    AccountNumber   int64     `json:"accountNumber"`
    Name            string    `json:"name"`
    Balance         int64     `json:"balance"`
    BVNVerification bool      `json:"bvnVerification"`
    BVN             *string   `json:"bvn"`
    CreatedAt       time.Time `json:"createdAt"`
    UpdatedAt       time.Time `json:"updatedAt"`
}

type accountEnvelope struct {
    Account accountResponse `json:"account"`
}

type listAccountsResponse struct {
    Accounts []accountResponse `json:"accounts"`
}

type withdrawResponse struct {
    Message string          `json:"message"`
    Account accountResponse `json:"account"`
}

type transferResponse struct {
    Message     string          `json:"message"`
    FromAccount accountResponse `json:"fromAccount"`
    ToAccount   accountResponse `json:"toAccount"`
}

type transactionResponse struct {
    ID            uuid.UUID              `json:"id"`
    AccountNumber int64                  `json:"accountNumber"`
    Kind          ledger.TransactionKind `json:"kind"`
    Amount        int64                  `json:"amount"`
    Counterparty  *int64                 `json:"counterparty,omitempty"`
    BalanceAfter  int64                  `json:"balanceAfter"`
    CreatedAt     time.Time              `json:"createdAt"`
}

type listTransactionsResponse struct {
    Transactions []transactionResponse `json:"transactions"`
}

func toAccountResponse(a ledger.Account) accountResponse {
    return accountResponse{
        AccountNumber:   a.Number,
        Name:            a.Name,
        Balance:         a.Balance,
        BVNVerification: a.BVNVerified,
        BVN:             a.BVN,
        CreatedAt:       a.CreatedAt,
        UpdatedAt:       a.UpdatedAt,
    }
}

func toTransactionResponse(t ledger.Transaction) transactionResponse {
    return transactionResponse{
        ID:            t.ID,
        AccountNumber: t.AccountNumber,
        Kind:          t.Kind,
        Amount:        t.Amount,
        Counterparty:  t.Counterparty,
        BalanceAfter:  t.BalanceAfter,
        CreatedAt:     t.CreatedAt,
    }
}
