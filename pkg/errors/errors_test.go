package errors

import (
	stderrors "errors"
	"testing"
)

func TestNewAndError(t *testing.T) {
	err := New(ErrCodeInvalidManifest, "no supported lockfile in %s", "/tmp/project")
	want := "INVALID_MANIFEST: no supported lockfile in /tmp/project"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("exit status 127")
	err := Wrap(ErrCodeScanner, cause, "osv-scanner failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeProcess, "spawn failed")

	if !Is(err, ErrCodeProcess) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeProcess) {
		t.Error("Is should not match non-structured errors")
	}
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	inner := New(ErrCodeFileNotFound, "missing package.json")
	outer := Wrap(ErrCodeInternal, inner, "detect failed")

	// errors.As finds the outermost *Error, so the outer code wins.
	if !Is(outer, ErrCodeInternal) {
		t.Error("outer code should match")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "osv-scanner.toml is not valid TOML")
	if got := UserMessage(err); got != "osv-scanner.toml is not valid TOML" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
