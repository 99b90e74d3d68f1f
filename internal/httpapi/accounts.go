package httpapi

import (
    "net/http"

    "github.com/tinoosan/bankaccounts/internal/service/account"
)

const accountNotFound = "Account not found"

// postAccount handles POST /accounts.
func (s *Server) postAccount(w http.ResponseWriter, r *http.Request) {
    in, ok := r.Context().Value(ctxKeyPostAccount).(account.CreateInput)
    if !ok {
        writeErr(w, http.StatusInternalServerError, "validated input missing", "internal")
        return
    }
    acc, err := s.accountSvc.Create(r.Context(), in)
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    s.log.Info("account created", "account_number", acc.Number)
    toJSON(w, http.StatusCreated, accountEnvelope{Account: toAccountResponse(acc)})
}

// listAccounts handles GET /accounts. An empty store yields an empty list.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
    accs, err := s.accountSvc.List(r.Context())
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    out := make([]accountResponse, 0, len(accs))
    for _, a := range accs {
        out = append(out, toAccountResponse(a))
    }
    toJSON(w, http.StatusOK, listAccountsResponse{Accounts: out})
}

// getAccount handles GET /accounts/{accountNumber}.
func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    acc, err := s.accountSvc.Get(r.Context(), number)
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    toJSON(w, http.StatusOK, toAccountResponse(acc))
}

// deleteAccount handles DELETE /accounts/{accountNumber}.
func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    if err := s.accountSvc.Delete(r.Context(), number); err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    s.log.Info("account deleted", "account_number", number)
    w.WriteHeader(http.StatusNoContent)
}
