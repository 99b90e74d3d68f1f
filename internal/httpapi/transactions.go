package httpapi

import (
    "fmt"
    "net/http"
    "strconv"

    "github.com/govalues/money"
)

// deposit handles POST /accounts/{accountNumber}/deposit.
func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    amount, _ := r.Context().Value(ctxKeyAmount).(int64)
    acc, err := s.bankSvc.Deposit(r.Context(), number, amount)
    observeOperation("deposit", err)
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// withdraw handles POST /accounts/{accountNumber}/withdraw.
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    amount, _ := r.Context().Value(ctxKeyAmount).(int64)
    acc, err := s.bankSvc.Withdraw(r.Context(), number, amount)
    observeOperation("withdraw", err)
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    toJSON(w, http.StatusOK, withdrawResponse{
        Message: fmt.Sprintf("Your withdraw of %s was successful", s.formatAmount(amount)),
        Account: toAccountResponse(acc),
    })
}

// transfer handles POST /accounts/{accountNumber}/transfer.
func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    in, _ := r.Context().Value(ctxKeyTransfer).(transferInput)
    from, to, err := s.bankSvc.Transfer(r.Context(), number, in.To, in.Amount)
    observeOperation("transfer", err)
    if err != nil {
        s.writeDomainErr(w, r, err, "One or both accounts not found")
        return
    }
    s.log.Info("transfer complete", "from", from.Number, "to", to.Number, "amount", in.Amount)
    toJSON(w, http.StatusOK, transferResponse{
        Message:     fmt.Sprintf("Transfer of %s from account %d to account %d was successful", s.formatAmount(in.Amount), from.Number, to.Number),
        FromAccount: toAccountResponse(from),
        ToAccount:   toAccountResponse(to),
    })
}

// listTransactions handles GET /accounts/{accountNumber}/transactions.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    txs, err := s.bankSvc.History(r.Context(), number)
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    out := make([]transactionResponse, 0, len(txs))
    for _, t := range txs {
        out = append(out, toTransactionResponse(t))
    }
    toJSON(w, http.StatusOK, listTransactionsResponse{Transactions: out})
}

// formatAmount renders whole units in the configured currency, e.g. "NGN 50.00".
func (s *Server) formatAmount(units int64) string {
    amt, err := money.NewAmount(s.currency, units, 0)
    if err != nil {
        return strconv.FormatInt(units, 10)
    }
    return amt.String()
}
