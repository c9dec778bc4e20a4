package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "runtime error",
			code:    "R001",
			wantMsg: "No active scope",
			wantCat: CategoryRuntime,
		},
		{
			name:    "config error",
			code:    "C002",
			wantMsg: "Invalid configuration value",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := New("R002")
	if got := err.Error(); got != "R002: Scope disposed" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := New("C001").Wrap(fmt.Errorf("open proton.json: permission denied"))
	if !strings.HasSuffix(wrapped.Error(), "permission denied") {
		t.Errorf("wrapped Error() = %q", wrapped.Error())
	}

	plain := Newf(CategoryCLI, "bad flag %q", "--x")
	if plain.Error() != `bad flag "--x"` {
		t.Errorf("Newf Error() = %q", plain.Error())
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New("R001")
	err := fmt.Errorf("registering cleanup: %w", New("R001").WithSuggestion("x"))

	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New("R002")) {
		t.Error("errors.Is should not match a different code")
	}

	a := Newf(CategoryCLI, "a")
	b := Newf(CategoryCLI, "a")
	if stderrors.Is(a, b) {
		t.Error("codeless errors should only match themselves")
	}
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner")
	err := FromError(inner, "C001")
	if !stderrors.Is(err, inner) {
		t.Error("FromError should wrap the original error")
	}
	if FromError(nil, "C001") != nil {
		t.Error("FromError(nil) should be nil")
	}
	again := FromError(err, "C002")
	if again != err {
		t.Error("FromError should return an existing *Error unchanged")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New("R001").WithExample("scope.Run(func() { ... })").Format()
	for _, want := range []string{"ERROR R001: No active scope", "Hint:", "Example:", "Learn more: " + docBase + "R001"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}

	if got := New("R002").FormatCompact(); got != "R002: Scope disposed" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line too long: %q", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("empty text should wrap to nil")
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("R001"); !ok {
		t.Error("R001 should be registered")
	}
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	wrapped := fmt.Errorf("loading: %w", New("C002").WithDetail("workload.signals must be at least 1"))
	Fprint(&buf, wrapped)

	out := buf.String()
	if !strings.Contains(out, "ERROR C002: Invalid configuration value") {
		t.Errorf("Fprint should find the coded error in the chain, got:\n%s", out)
	}
	if !strings.Contains(out, "workload.signals") {
		t.Errorf("Fprint output missing detail:\n%s", out)
	}

	buf.Reset()
	Fprint(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("plain error output = %q", buf.String())
	}
}
