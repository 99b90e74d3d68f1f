package memory

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/tinoosan/bankaccounts/internal/errs"
	"github.com/tinoosan/bankaccounts/internal/keygen"
	"github.com/tinoosan/bankaccounts/internal/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return New(WithGenerator(keygen.NewSequence(1_000_000_000)), WithClock(func() time.Time { return fixed }))
}

func mustCreate(t *testing.T, s *Store, name string, balance int64) ledger.Account {
	t.Helper()
	a, err := s.CreateAccount(context.Background(), name, balance)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return a
}

func balanceOf(t *testing.T, s *Store, n int64) int64 {
	t.Helper()
	a, err := s.GetAccount(context.Background(), n)
	if err != nil {
		t.Fatalf("get %d: %v", n, err)
	}
	return a.Balance
}

func TestCreateAccount_AssignsUniqueNumbers(t *testing.T) {
	s := newTestStore(t)
	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		a := mustCreate(t, s, "acct", int64(i))
		if a.Balance != int64(i) {
			t.Fatalf("expected balance %d, got %d", i, a.Balance)
		}
		if seen[a.Number] {
			t.Fatalf("duplicate number %d", a.Number)
		}
		seen[a.Number] = true
		if a.BVNVerified || a.BVN != nil {
			t.Fatalf("new account must start unverified: %+v", a)
		}
	}
}

type repeatGen struct{ keygen.Generator }

func (repeatGen) AccountNumber() int64 { return 1_234_567_890 }

func TestCreateAccount_CollisionExhausted(t *testing.T) {
	s := New(WithGenerator(repeatGen{keygen.NewRandom()}))
	mustCreate(t, s, "first", 0)
	if _, err := s.CreateAccount(context.Background(), "second", 0); !errors.Is(err, ErrKeySpaceExhausted) {
		t.Fatalf("expected ErrKeySpaceExhausted, got %v", err)
	}
}

func TestCreateAccount_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := s.CreateAccount(ctx, "   ", 10); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("blank name: expected ErrInvalid, got %v", err)
	}
	if _, err := s.CreateAccount(ctx, "Alice", -1); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("negative balance: expected ErrInvalid, got %v", err)
	}
}

func TestListAccounts_InsertionOrder(t *testing.T) {
	s := newTestStore(t)
	accs, err := s.ListAccounts(context.Background())
	if err != nil || len(accs) != 0 {
		t.Fatalf("expected empty list, got %v %v", accs, err)
	}
	a := mustCreate(t, s, "a", 1)
	b := mustCreate(t, s, "b", 2)
	c := mustCreate(t, s, "c", 3)
	if err := s.DeleteAccount(context.Background(), b.Number); err != nil {
		t.Fatalf("delete: %v", err)
	}
	accs, _ = s.ListAccounts(context.Background())
	if len(accs) != 2 || accs[0].Number != a.Number || accs[1].Number != c.Number {
		t.Fatalf("unexpected order: %+v", accs)
	}
}

func TestDepositThenWithdraw_RestoresBalance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 100)
	for _, amt := range []int64{1, 37, 100, 5000} {
		if _, err := s.Deposit(ctx, a.Number, amt); err != nil {
			t.Fatalf("deposit: %v", err)
		}
		if _, err := s.Withdraw(ctx, a.Number, amt); err != nil {
			t.Fatalf("withdraw: %v", err)
		}
		if got := balanceOf(t, s, a.Number); got != 100 {
			t.Fatalf("expected 100, got %d", got)
		}
	}
}

func TestWithdraw_InsufficientLeavesBalance(t *testing.T) {
	s := newTestStore(t)
	a := mustCreate(t, s, "Alice", 100)
	if _, err := s.Withdraw(context.Background(), a.Number, 101); !errors.Is(err, errs.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := balanceOf(t, s, a.Number); got != 100 {
		t.Fatalf("balance changed: %d", got)
	}
}

func TestAmountChecks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 100)
	b := mustCreate(t, s, "Bob", 100)
	for _, amt := range []int64{0, -5} {
		if _, err := s.Deposit(ctx, a.Number, amt); !errors.Is(err, errs.ErrInvalidAmount) {
			t.Fatalf("deposit %d: expected ErrInvalidAmount, got %v", amt, err)
		}
		if _, err := s.Withdraw(ctx, a.Number, amt); !errors.Is(err, errs.ErrInvalidAmount) {
			t.Fatalf("withdraw %d: expected ErrInvalidAmount, got %v", amt, err)
		}
		if _, _, err := s.Transfer(ctx, a.Number, b.Number, amt); !errors.Is(err, errs.ErrInvalidAmount) {
			t.Fatalf("transfer %d: expected ErrInvalidAmount, got %v", amt, err)
		}
	}
}

func TestNotFoundWinsOverInvalidAmount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 100)
	if _, err := s.Deposit(ctx, 42, -1); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("deposit: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Withdraw(ctx, 42, 0); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("withdraw: expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.Transfer(ctx, a.Number, 42, -1); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("transfer: expected ErrNotFound, got %v", err)
	}
}

func TestTransfer_Scenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	alice := mustCreate(t, s, "Alice", 100)
	bob := mustCreate(t, s, "Bob", 200)
	from, to, err := s.Transfer(ctx, alice.Number, bob.Number, 50)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if from.Balance != 50 || to.Balance != 250 {
		t.Fatalf("unexpected returned balances %d/%d", from.Balance, to.Balance)
	}
	if balanceOf(t, s, alice.Number) != 50 || balanceOf(t, s, bob.Number) != 250 {
		t.Fatalf("unexpected stored balances")
	}
	if _, _, err := s.Transfer(ctx, alice.Number, bob.Number, 51); !errors.Is(err, errs.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if _, _, err := s.Transfer(ctx, alice.Number, alice.Number, 10); !errors.Is(err, errs.ErrSameAccount) || !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
}

func TestTransfer_ConcurrentPreservesSum(t *testing.T) {
	s := New()
	ctx := context.Background()
	a := mustCreate(t, s, "a", 1000)
	b := mustCreate(t, s, "b", 1000)
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _, _ = s.Transfer(ctx, a.Number, b.Number, 7)
			} else {
				_, _, _ = s.Transfer(ctx, b.Number, a.Number, 5)
			}
		}(i)
	}
	wg.Wait()
	if sum := balanceOf(t, s, a.Number) + balanceOf(t, s, b.Number); sum != 2000 {
		t.Fatalf("sum drifted: %d", sum)
	}
}

func TestUpdateAccount_BVNAndName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 0)
	yes, no := true, false
	got, err := s.UpdateAccount(ctx, a.Number, ledger.AccountPatch{BVNVerification: &yes})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.BVNVerified || got.BVN == nil || len(*got.BVN) != 11 {
		t.Fatalf("expected bvn assigned: %+v", got)
	}
	if got.Name != "Alice" {
		t.Fatalf("name should be untouched, got %q", got.Name)
	}
	name := "Alice B."
	got, err = s.UpdateAccount(ctx, a.Number, ledger.AccountPatch{Name: &name})
	if err != nil || got.Name != "Alice B." || got.BVN == nil {
		t.Fatalf("name update should keep bvn: %+v %v", got, err)
	}
	got, err = s.UpdateAccount(ctx, a.Number, ledger.AccountPatch{BVNVerification: &no})
	if err != nil || got.BVNVerified || got.BVN != nil {
		t.Fatalf("expected bvn cleared: %+v %v", got, err)
	}
	blank := " "
	if _, err := s.UpdateAccount(ctx, a.Number, ledger.AccountPatch{Name: &blank}); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := s.UpdateAccount(ctx, 42, ledger.AccountPatch{Name: &name}); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReturnedAccountsAreCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 0)
	yes := true
	got, _ := s.UpdateAccount(ctx, a.Number, ledger.AccountPatch{BVNVerification: &yes})
	*got.BVN = "tampered"
	got.Balance = 1_000_000
	again, _ := s.GetAccount(ctx, a.Number)
	if *again.BVN == "tampered" || again.Balance != 0 {
		t.Fatalf("store state leaked through returned value: %+v", again)
	}
}

func TestDeleteThenGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 10)
	if err := s.DeleteAccount(ctx, a.Number); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetAccount(ctx, a.Number); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteAccount(ctx, a.Number); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := s.Transactions(ctx, a.Number); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("history after delete: expected ErrNotFound, got %v", err)
	}
}

func TestTransactions_RecordsMutations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "Alice", 100)
	b := mustCreate(t, s, "Bob", 0)
	_, _ = s.Deposit(ctx, a.Number, 20)
	_, _ = s.Withdraw(ctx, a.Number, 30)
	_, _, _ = s.Transfer(ctx, a.Number, b.Number, 40)
	_, _ = s.Withdraw(ctx, a.Number, 1000) // rejected, not recorded

	rows, err := s.Transactions(ctx, a.Number)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	want := []struct {
		kind  ledger.TransactionKind
		after int64
	}{{ledger.KindDeposit, 120}, {ledger.KindWithdrawal, 90}, {ledger.KindTransferOut, 50}}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, w := range want {
		if rows[i].Kind != w.kind || rows[i].BalanceAfter != w.after {
			t.Fatalf("row %d: got %s/%d want %s/%d", i, rows[i].Kind, rows[i].BalanceAfter, w.kind, w.after)
		}
	}
	if rows[2].Counterparty == nil || *rows[2].Counterparty != b.Number {
		t.Fatalf("transfer row missing counterparty")
	}
	bRows, _ := s.Transactions(ctx, b.Number)
	if len(bRows) != 1 || bRows[0].Kind != ledger.KindTransferIn || *bRows[0].Counterparty != a.Number {
		t.Fatalf("unexpected destination history: %+v", bRows)
	}
}

func TestDeposit_RejectsOverflow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "A", 100)
	if _, err := s.Deposit(ctx, a.Number, math.MaxInt64); !errors.Is(err, errs.ErrBalanceOverflow) || !errors.Is(err, errs.ErrInvalidAmount) {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	if got := balanceOf(t, s, a.Number); got != 100 {
		t.Fatalf("balance changed to %d", got)
	}
	if _, err := s.Deposit(ctx, a.Number, math.MaxInt64-100); err != nil {
		t.Fatalf("deposit up to the limit should pass: %v", err)
	}
	rows, _ := s.Transactions(ctx, a.Number)
	if len(rows) != 1 {
		t.Fatalf("only the successful deposit should be recorded, got %d rows", len(rows))
	}
}

func TestTransfer_RejectsDestinationOverflow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := mustCreate(t, s, "A", 10)
	b := mustCreate(t, s, "B", math.MaxInt64)
	if _, _, err := s.Transfer(ctx, a.Number, b.Number, 5); !errors.Is(err, errs.ErrBalanceOverflow) {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	if balanceOf(t, s, a.Number) != 10 || balanceOf(t, s, b.Number) != math.MaxInt64 {
		t.Fatalf("balances must be unchanged")
	}
	if rows, _ := s.Transactions(ctx, a.Number); len(rows) != 0 {
		t.Fatalf("no history rows expected, got %d", len(rows))
	}
}

func TestSeed_ReturnsValidationError(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Seed("  ", 1); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if a, err := s.Seed("jane", 200); err != nil || a.Balance != 200 {
		t.Fatalf("seed: %+v %v", a, err)
	}
}
