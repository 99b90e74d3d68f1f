package httpapi

import (
    "context"
    "encoding/json"
    "net/http"
    "strconv"

    chi "github.com/go-chi/chi/v5"
    "github.com/tinoosan/bankaccounts/internal/service/account"
)

type ctxKey string

const (
    ctxKeyAccountNumber ctxKey = "accountNumber"
    ctxKeyPostAccount   ctxKey = "validatedPostAccount"
    ctxKeyAmount        ctxKey = "validatedAmount"
    ctxKeyTransfer      ctxKey = "validatedTransfer"
)

// decodeStrict decodes a JSON body, rejecting unknown fields.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
    dec := json.NewDecoder(r.Body)
    dec.DisallowUnknownFields()
    if err := dec.Decode(v); err != nil {
        badRequest(w, "invalid JSON: "+err.Error())
        return false
    }
    return true
}

// accountNumberParam parses {accountNumber} once and stores it in the request context.
func (s *Server) accountNumberParam() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            n, err := strconv.ParseInt(chi.URLParam(r, "accountNumber"), 10, 64)
            if err != nil || n <= 0 {
                badRequest(w, "invalid account number")
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyAccountNumber, n)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validatePostAccount parses and validates the POST /accounts body and stores CreateInput.
func (s *Server) validatePostAccount() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req postAccountRequest
            if !decodeStrict(w, r, &req) { return }
            balance := req.Balance
            if !balance.Set { balance = req.InitialBalance }
            if req.Name == nil || !balance.Set {
                badRequest(w, "Name and Balance are required")
                return
            }
            if balance.Invalid {
                badRequest(w, "balance must be a whole number")
                return
            }
            in := account.CreateInput{Name: *req.Name, Balance: balance.Value}
            if err := s.accountSvc.ValidateCreate(in); err != nil {
                badRequest(w, err.Error())
                return
            }
            ctx := context.WithValue(r.Context(), ctxKeyPostAccount, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateAmount parses {"amount": n} for deposit and withdraw. A missing or
// malformed amount is passed on as 0 so an unknown account is reported first.
func (s *Server) validateAmount() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req amountRequest
            if !decodeStrict(w, r, &req) { return }
            ctx := context.WithValue(r.Context(), ctxKeyAmount, req.Amount.orZero())
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

// validateTransfer parses the transfer body. A missing destination resolves to
// no account and a bad amount to 0; the service judges both in order.
func (s *Server) validateTransfer() func(http.Handler) http.Handler {
    return func(next http.Handler) http.Handler {
        return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
            var req transferRequest
            if !decodeStrict(w, r, &req) { return }
            in := transferInput{To: req.ToAccountNumber.orZero(), Amount: req.Amount.orZero()}
            ctx := context.WithValue(r.Context(), ctxKeyTransfer, in)
            next.ServeHTTP(w, r.WithContext(ctx))
        })
    }
}

func accountNumberFrom(ctx context.Context) (int64, bool) {
    n, ok := ctx.Value(ctxKeyAccountNumber).(int64)
    return n, ok
}
