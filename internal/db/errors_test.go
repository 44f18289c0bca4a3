package db

import (
	"errors"
	"testing"
)

func TestError_WrapsOp(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Op: OpFind, Err: cause}

	if err.Error() != "find: connection refused" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
