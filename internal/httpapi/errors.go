package httpapi

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/tinoosan/bankaccounts/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
    Error string `json:"error"`
    Code  string `json:"code,omitempty"`
}

// toJSON writes a JSON response with status code.
func toJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
    toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "validation_error") }
func notFound(w http.ResponseWriter, msg string)   { writeErr(w, http.StatusNotFound, msg, "not_found") }

// writeDomainErr maps service errors onto 4xx responses; anything unknown is a 500.
func (s *Server) writeDomainErr(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
    switch {
    case errors.Is(err, errs.ErrNotFound):
        notFound(w, notFoundMsg)
    case errors.Is(err, errs.ErrBalanceOverflow):
        writeErr(w, http.StatusBadRequest, "Amount would overflow the account balance", "invalid_amount")
    case errors.Is(err, errs.ErrInvalidAmount):
        writeErr(w, http.StatusBadRequest, "Amount must be a positive whole number", "invalid_amount")
    case errors.Is(err, errs.ErrInsufficientFunds):
        writeErr(w, http.StatusBadRequest, "Insufficient funds", "insufficient_funds")
    case errors.Is(err, errs.ErrInvalid):
        badRequest(w, err.Error())
    default:
        s.log.Error("request failed", "path", r.URL.Path, "err", err)
        writeErr(w, http.StatusInternalServerError, "internal error", "internal")
    }
}
