package errors

import "sort"

const docBase = "https://proton.vango.dev/errors/"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
	DocURL     string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (R001-R099)
	// ============================================

	"R001": {
		Category:   CategoryRuntime,
		Message:    "No active scope",
		Detail:     "OnScopeDispose was called while no scope was running. Disposal callbacks need an owning scope.",
		Suggestion: "Call OnScopeDispose inside Scope.Run or UseScope, or register directly with Scope.OnDispose.",
		DocURL:     docBase + "R001",
	},
	"R002": {
		Category:   CategoryRuntime,
		Message:    "Scope disposed",
		Detail:     "The scope has already been disposed. Disposal is terminal and a disposed scope cannot run functions again.",
		Suggestion: "Create a new scope with NewScope instead of reusing a disposed one.",
		DocURL:     docBase + "R002",
	},
	"R003": {
		Category:   CategoryRuntime,
		Message:    "Equality function type mismatch",
		Detail:     "WithEquals was given a function whose argument type differs from the signal's value type.",
		Suggestion: "Pass a func(a, b T) bool where T is the signal's type parameter.",
		DocURL:     docBase + "R003",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   docBase + "C001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is outside its allowed range.",
		DocURL:   docBase + "C002",
	},

	// ============================================
	// CLI Errors (X001-X099)
	// ============================================

	"X001": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "The requested error code is not registered.",
		DocURL:   docBase,
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
