package logger

import "testing"

func TestNewReturnsLogger(t *testing.T) {
	if New() == nil {
		t.Fatal("expected logger instance")
	}
}
