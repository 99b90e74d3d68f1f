package memory

import (
	"github.com/tinoosan/bankaccounts/internal/service/account"
	"github.com/tinoosan/bankaccounts/internal/service/banking"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ account.Repo   = (*Store)(nil)
	_ account.Writer = (*Store)(nil)
	_ banking.Repo   = (*Store)(nil)
	_ banking.Writer = (*Store)(nil)
)
