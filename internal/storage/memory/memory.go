package memory

// Package memory holds the in-process ledger store. It is the only place
// balances change; every mutation runs under a single lock so multi-account
// updates are never observed half-applied.
import (
    "context"
    "errors"
    "fmt"
    "math"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/tinoosan/bankaccounts/internal/errs"
    "github.com/tinoosan/bankaccounts/internal/keygen"
    "github.com/tinoosan/bankaccounts/internal/ledger"
)

// maxKeyAttempts bounds account-number draws when the generator collides.
const maxKeyAttempts = 32

// ErrKeySpaceExhausted is returned when no free account number could be drawn.
var ErrKeySpaceExhausted = errors.New("could not allocate a unique account number")

// Store is an in-memory ledger guarded by an RWMutex for concurrent reads/writes.
type Store struct {
    mu       sync.RWMutex
    keys     keygen.Generator
    now      func() time.Time
    accounts map[int64]*ledger.Account
    // order keeps account numbers in insertion order for listing
    order    []int64
    history  map[int64][]ledger.Transaction
}

// Option configures a Store.
type Option func(*Store)

// WithGenerator replaces the random account-number and BVN generator.
func WithGenerator(g keygen.Generator) Option { return func(s *Store) { s.keys = g } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// New constructs an empty store.
func New(opts ...Option) *Store {
    s := &Store{
        keys:     keygen.NewRandom(),
        now:      func() time.Time { return time.Now().UTC() },
        accounts: make(map[int64]*ledger.Account),
        history:  make(map[int64][]ledger.Transaction),
    }
    for _, o := range opts {
        o(s)
    }
    return s
}

// Seed creates an account for local dev/tests.
func (s *Store) Seed(name string, balance int64) (ledger.Account, error) {
    return s.CreateAccount(context.Background(), name, balance)
}

// Reset drops every account and history row.
func (s *Store) Reset() {
    s.mu.Lock()
    s.accounts = map[int64]*ledger.Account{}
    s.order = nil
    s.history = map[int64][]ledger.Transaction{}
    s.mu.Unlock()
}

// Ready reports readiness; the in-memory store is always ready.
func (s *Store) Ready(_ context.Context) error { return nil }

// CreateAccount inserts a new account with a freshly drawn number.
func (s *Store) CreateAccount(_ context.Context, name string, initialBalance int64) (ledger.Account, error) {
    name = strings.TrimSpace(name)
    if name == "" {
        return ledger.Account{}, fmt.Errorf("%w: name is required", errs.ErrInvalid)
    }
    if initialBalance < 0 {
        return ledger.Account{}, fmt.Errorf("%w: balance must not be negative", errs.ErrInvalid)
    }
    s.mu.Lock()
    defer s.mu.Unlock()
    number, err := s.nextNumberLocked()
    if err != nil { return ledger.Account{}, err }
    now := s.now()
    a := &ledger.Account{Number: number, Name: name, Balance: initialBalance, CreatedAt: now, UpdatedAt: now}
    s.accounts[number] = a
    s.order = append(s.order, number)
    return a.Clone(), nil
}

// ListAccounts returns every account in insertion order.
func (s *Store) ListAccounts(_ context.Context) ([]ledger.Account, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    out := make([]ledger.Account, 0, len(s.order))
    for _, n := range s.order {
        out = append(out, s.accounts[n].Clone())
    }
    return out, nil
}

// GetAccount returns the account with the given number.
func (s *Store) GetAccount(_ context.Context, number int64) (ledger.Account, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    a, ok := s.accounts[number]
    if !ok { return ledger.Account{}, errs.ErrNotFound }
    return a.Clone(), nil
}

// UpdateAccount applies the supplied patch fields only.
func (s *Store) UpdateAccount(_ context.Context, number int64, p ledger.AccountPatch) (ledger.Account, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    a, ok := s.accounts[number]
    if !ok { return ledger.Account{}, errs.ErrNotFound }
    var name string
    if p.Name != nil {
        name = strings.TrimSpace(*p.Name)
        if name == "" { return ledger.Account{}, fmt.Errorf("%w: name must not be empty", errs.ErrInvalid) }
    }
    if p.Name != nil { a.Name = name }
    if p.BVNVerification != nil {
        a.BVNVerified = *p.BVNVerification
        if a.BVNVerified {
            bvn := s.keys.BVN()
            a.BVN = &bvn
        } else {
            a.BVN = nil
        }
    }
    a.UpdatedAt = s.now()
    return a.Clone(), nil
}

// DeleteAccount removes an account and its history.
func (s *Store) DeleteAccount(_ context.Context, number int64) error {
    s.mu.Lock(); defer s.mu.Unlock()
    if _, ok := s.accounts[number]; !ok { return errs.ErrNotFound }
    delete(s.accounts, number)
    delete(s.history, number)
    for i, n := range s.order {
        if n == number {
            s.order = append(s.order[:i], s.order[i+1:]...)
            break
        }
    }
    return nil
}

// Deposit credits amount to the account.
func (s *Store) Deposit(_ context.Context, number, amount int64) (ledger.Account, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    a, ok := s.accounts[number]
    if !ok { return ledger.Account{}, errs.ErrNotFound }
    if amount <= 0 { return ledger.Account{}, errs.ErrInvalidAmount }
    if !canCredit(a.Balance, amount) { return ledger.Account{}, errs.ErrBalanceOverflow }
    now := s.now()
    a.Balance += amount
    a.UpdatedAt = now
    s.recordLocked(a, ledger.KindDeposit, amount, nil, now)
    return a.Clone(), nil
}

// Withdraw debits amount from the account; the balance never goes negative.
func (s *Store) Withdraw(_ context.Context, number, amount int64) (ledger.Account, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    a, ok := s.accounts[number]
    if !ok { return ledger.Account{}, errs.ErrNotFound }
    if amount <= 0 { return ledger.Account{}, errs.ErrInvalidAmount }
    if amount > a.Balance { return ledger.Account{}, errs.ErrInsufficientFunds }
    now := s.now()
    a.Balance -= amount
    a.UpdatedAt = now
    s.recordLocked(a, ledger.KindWithdrawal, amount, nil, now)
    return a.Clone(), nil
}

// Transfer moves amount from one account to another as a single step.
func (s *Store) Transfer(_ context.Context, from, to, amount int64) (ledger.Account, ledger.Account, error) {
    s.mu.Lock(); defer s.mu.Unlock()
    src, ok1 := s.accounts[from]
    dst, ok2 := s.accounts[to]
    if !ok1 || !ok2 { return ledger.Account{}, ledger.Account{}, errs.ErrNotFound }
    if amount <= 0 { return ledger.Account{}, ledger.Account{}, errs.ErrInvalidAmount }
    if from == to { return ledger.Account{}, ledger.Account{}, errs.ErrSameAccount }
    if src.Balance < amount { return ledger.Account{}, ledger.Account{}, errs.ErrInsufficientFunds }
    if !canCredit(dst.Balance, amount) { return ledger.Account{}, ledger.Account{}, errs.ErrBalanceOverflow }
    now := s.now()
    src.Balance -= amount
    dst.Balance += amount
    src.UpdatedAt, dst.UpdatedAt = now, now
    s.recordLocked(src, ledger.KindTransferOut, amount, &to, now)
    s.recordLocked(dst, ledger.KindTransferIn, amount, &from, now)
    return src.Clone(), dst.Clone(), nil
}

// Transactions returns the account's history, oldest first.
func (s *Store) Transactions(_ context.Context, number int64) ([]ledger.Transaction, error) {
    s.mu.RLock(); defer s.mu.RUnlock()
    if _, ok := s.accounts[number]; !ok { return nil, errs.ErrNotFound }
    rows := s.history[number]
    out := make([]ledger.Transaction, len(rows))
    copy(out, rows)
    return out, nil
}

// canCredit reports whether amount can be added to balance without overflowing int64.
func canCredit(balance, amount int64) bool { return amount <= math.MaxInt64-balance }

// nextNumberLocked draws account numbers until an unused one appears.
// Caller must hold s.mu (write lock).
func (s *Store) nextNumberLocked() (int64, error) {
    for i := 0; i < maxKeyAttempts; i++ {
        n := s.keys.AccountNumber()
        if _, taken := s.accounts[n]; !taken {
            return n, nil
        }
    }
    return 0, ErrKeySpaceExhausted
}

// recordLocked appends a history row reflecting a's post-mutation balance.
// Caller must hold s.mu (write lock).
func (s *Store) recordLocked(a *ledger.Account, kind ledger.TransactionKind, amount int64, counterparty *int64, at time.Time) {
    var cp *int64
    if counterparty != nil {
        v := *counterparty
        cp = &v
    }
    s.history[a.Number] = append(s.history[a.Number], ledger.Transaction{
        ID:            uuid.New(),
        AccountNumber: a.Number,
        Kind:          kind,
        Amount:        amount,
        Counterparty:  cp,
        BalanceAfter:  a.Balance,
        CreatedAt:     at,
    })
}
