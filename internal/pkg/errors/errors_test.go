package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	err := New(CodeValidation, "bad limit")
	want := "VALIDATION_ERROR: bad limit"
	if err.Error() != want {
		t.Errorf("Error() = %s, want %s", err.Error(), want)
	}

	wrapped := Wrap(CodeParse, "parse failed", stderrors.New("boom"))
	if wrapped.Error() != "PARSE_ERROR: parse failed: boom" {
		t.Errorf("Error() = %s", wrapped.Error())
	}
}

func TestUnwrap(t *testing.T) {
	inner := stderrors.New("io failure")
	err := Wrap(CodeIO, "read failed", inner)

	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestHasCode(t *testing.T) {
	err := ParseError("tree-sitter failed", stderrors.New("native error"))

	if !HasCode(err, CodeParse) {
		t.Error("HasCode(CodeParse) = false, want true")
	}
	if HasCode(err, CodeValidation) {
		t.Error("HasCode(CodeValidation) = true, want false")
	}

	// Code found deeper in a wrap chain.
	outer := fmt.Errorf("processing a.ts: %w", err)
	if !IsParse(outer) {
		t.Error("IsParse should see through fmt wrapping")
	}
}

func TestPredicates(t *testing.T) {
	if !IsUnsupportedLanguage(UnsupportedLanguageError("cobol")) {
		t.Error("IsUnsupportedLanguage = false, want true")
	}
	if !IsValidation(ValidationError("nope")) {
		t.Error("IsValidation = false, want true")
	}
	if IsParse(nil) {
		t.Error("IsParse(nil) = true, want false")
	}
}

func TestWithDetail(t *testing.T) {
	err := UnsupportedLanguageError("cobol").
		WithDetail("path", "prog.cbl").
		WithDetail("limit", "50")

	if err.Details["path"] != "prog.cbl" {
		t.Errorf("Details[path] = %s, want prog.cbl", err.Details["path"])
	}
	if len(err.Details) != 2 {
		t.Errorf("len(Details) = %d, want 2", len(err.Details))
	}
}
