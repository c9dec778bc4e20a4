package reactive

import "github.com/vango-dev/proton/internal/errors"

// ErrNoActiveScope is returned by OnScopeDispose when no scope is running.
// It signals a programming error and should not be ignored.
var ErrNoActiveScope = errors.New("R001")

// ErrScopeDisposed is returned by Scope.Run on a disposed scope.
var ErrScopeDisposed = errors.New("R002")
