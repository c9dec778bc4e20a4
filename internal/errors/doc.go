// Package errors provides structured, coded errors for proton.
//
// Every error carries a code (e.g. "R001") that maps to a registered
// template with a category, a short message, a longer explanation and a
// documentation link. Codes are grouped by category:
//   - runtime (R0xx): misuse of the reactive runtime, such as registering a
//     disposal callback with no active scope
//   - config (C0xx): unreadable or invalid configuration files
//   - cli (X0xx): command-line usage errors
//
// # Usage
//
//	err := errors.New("R001").
//	    WithSuggestion("Call OnScopeDispose inside Scope.Run")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR R001: No active scope
//	//
//	//   OnScopeDispose was called while no scope was running.
//	//
//	//   Hint: Call OnScopeDispose inside Scope.Run
//	//
//	//   Learn more: https://proton.vango.dev/errors/R001
//
// Errors compare by code, so errors.Is works against the sentinel values
// exported by other packages:
//
//	if errors.Is(err, reactive.ErrNoActiveScope) { ... }
package errors
