package helper

import (
	"testing"
)

func TestCheckErrorNilIsNoop(t *testing.T) {
	CheckError(nil)
	CheckErrorf(nil, "must not be logged")
}

func TestGetLoggerNames(t *testing.T) {
	logger := GetSugarLogger([]string{"a", "b"})
	if logger == nil {
		t.Fatal("expected a logger")
	}
}
