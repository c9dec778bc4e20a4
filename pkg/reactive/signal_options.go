package reactive

// SignalOption is a functional option for configuring signals.
type SignalOption func(*signalOptions)

// signalOptions holds configuration for signal behavior.
type signalOptions struct {
	// equals is a func(T, T) bool, checked against T in NewSignal.
	equals any

	// alwaysNotify disables the equality gate.
	alwaysNotify bool

	// label names the signal's target in logs and inspector output.
	label string
}

// WithEquals replaces the default sameness check used to decide whether a
// write changes the value. The function's type must match the signal.
//
// Example:
//
//	user := reactive.NewSignal(rt, User{}, reactive.WithEquals(func(a, b User) bool {
//	    return a.ID == b.ID
//	}))
func WithEquals[T any](fn func(a, b T) bool) SignalOption {
	return func(o *signalOptions) {
		o.equals = fn
	}
}

// AlwaysNotify makes every write trigger dependents, even when the new
// value equals the old one.
func AlwaysNotify() SignalOption {
	return func(o *signalOptions) {
		o.alwaysNotify = true
	}
}

// SignalLabel names the signal in logs and inspector output.
func SignalLabel(label string) SignalOption {
	return func(o *signalOptions) {
		o.label = label
	}
}

// applySignalOptions applies the given options and returns the resulting config.
func applySignalOptions(opts []SignalOption) signalOptions {
	options := signalOptions{label: "signal"}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
