package httpapi

import (
    "net/http"

    "github.com/tinoosan/bankaccounts/internal/ledger"
)

// updateAccount handles PUT and PATCH /accounts/{accountNumber}.
// Only name and bvnVerification may change; balance is rejected as an unknown field.
func (s *Server) updateAccount(w http.ResponseWriter, r *http.Request) {
    number, _ := accountNumberFrom(r.Context())
    var payload updateAccountRequest
    if !decodeStrict(w, r, &payload) { return }
    if payload.Name == nil && payload.BVNVerification == nil {
        badRequest(w, "nothing to update: provide name or bvnVerification")
        return
    }
    acc, err := s.accountSvc.Update(r.Context(), number, ledger.AccountPatch{
        Name:            payload.Name,
        BVNVerification: payload.BVNVerification,
    })
    if err != nil {
        s.writeDomainErr(w, r, err, accountNotFound)
        return
    }
    toJSON(w, http.StatusOK, accountEnvelope{Account: toAccountResponse(acc)})
}
