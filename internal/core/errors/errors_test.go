package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "table not found")
		if err.Error() != "[NOT_FOUND] table not found" {
			t.Errorf("expected [NOT_FOUND] table not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("unexpected EOF")
		err := Wrap(original, CodeParse, "decode deprecation table")
		expected := "[PARSE_ERROR] decode deprecation table: unexpected EOF"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to the original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeValidationError, "invalid input"))
		if !IsCode(err, CodeValidationError) {
			t.Error("expected IsCode to see through fmt wrapping")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
		if IsCode(errors.New("plain"), CodeInternal) {
			t.Error("expected IsCode to return false for plain errors")
		}
		if CodeOf(errors.New("plain")) != CodeInternal {
			t.Error("expected plain errors to report CodeInternal")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeNotSupported, "unsupported language"), CtxPath, "a.vue")
		err = AddContext(err, CtxLanguage, "vue")
		err = AddContext(err, CtxPath, "b.vue")
		if !IsCode(err, CodeNotSupported) {
			t.Fatalf("expected code to survive AddContext, got %v", err)
		}
		if got := err.Error(); got != "[NOT_SUPPORTED] unsupported language path=b.vue language=vue" {
			t.Errorf("unexpected message %q", got)
		}
		var de *DomainError
		if !errors.As(err, &de) {
			t.Fatal("expected a DomainError")
		}
		if v, ok := de.Get(CtxPath); !ok || v != "b.vue" {
			t.Errorf("expected path context, got %v", v)
		}

		plain := AddContext(errors.New("boom"), CtxTable, "colors.json")
		if !IsCode(plain, CodeInternal) {
			t.Errorf("expected plain errors to become internal, got %v", plain)
		}
	})

	t.Run("LogValue", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		err := AddContext(Wrap(errors.New("eof"), CodeParse, "syntax error"), CtxPath, "a.js")
		logger.Error("lint failed", "error", err)
		out := buf.String()
		for _, want := range []string{"error.code=PARSE_ERROR", "error.cause=eof", "error.path=a.js"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})
}
