package errors

import (
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
			name:    "readonly write",
			code:    "E001",
			wantMsg: "Write to readonly target ignored",
			wantCat: CategoryRuntime,
		},
		{
			name:    "config missing",
			code:    "E141",
			wantMsg: "Configuration file not found",
			wantCat: CategoryConfig,
		},
		{
			name:    "protocol error",
			code:    "E301",
			wantMsg: "Malformed live message",
			wantCat: CategoryProtocol,
		},
		{
			name:    "unknown error code",
			code:    "E999",
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
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := New("E201").Wrap(cause).WithDetail("out/app.html")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !stderrors.Is(err, New("E201")) {
		t.Error("errors.Is by code = false, want true")
	}
	if stderrors.Is(err, New("E202")) {
		t.Error("errors.Is matched a different code")
	}
	want := "E201: Snapshot write failed (out/app.html): disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "E120") != nil {
		t.Error("FromError(nil) should be nil")
	}
	orig := New("E141")
	wrapped := fmt.Errorf("load: %w", orig)
	if got := FromError(wrapped, "E120"); got != orig {
		t.Errorf("FromError did not unwrap existing *Error")
	}
	plain := FromError(fmt.Errorf("boom"), "E120")
	if plain.Code != "E120" || plain.Wrapped == nil {
		t.Errorf("FromError(plain) = %+v", plain)
	}
	if !HasCode(wrapped, "E141") {
		t.Error("HasCode(wrapped, E141) = false")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("E202").
		WithDetail("target s3:// has no bucket").
		WithSuggestion("Use s3://bucket/prefix")
	out := err.Format()

	for _, want := range []string{
		"ERROR E202: Invalid snapshot target",
		"target s3:// has no bucket",
		"Hint: Use s3://bucket/prefix",
		"Learn more: https://minivue.dev/docs/errors/E202",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != "E202: Invalid snapshot target - target s3:// has no bucket" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 10)
	if len(lines) != 2 || lines[0] != "one two" || lines[1] != "three four" {
		t.Errorf("wrapText = %q", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(empty) should be nil")
	}
}
