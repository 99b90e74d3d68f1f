package httpapi

import "github.com/tinoosan/bankaccounts/internal/storage/memory"

// Compile-time interface assertions for the in-memory Store against HTTP API interfaces.
var (
    _ Store        = (*memory.Store)(nil)
    _ ReadyChecker = (*memory.Store)(nil)
)
