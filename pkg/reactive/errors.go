package reactive

import "errors"

// ErrScopeDisposed is the panic value for non-try reads of a signal or memo
// whose owning Scope has been disposed. Reading a disposed primitive is a
// lifecycle bug in the caller, not a recoverable data condition; use the
// TryGet/TryPeek forms when teardown races are expected.
var ErrScopeDisposed = errors.New("lumen: read from disposed reactive scope")
