package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_MatchThroughWrapping(t *testing.T) {
	for _, target := range []error{ErrorNotFound, ErrorDuplicateKey, ErrorInvalidCredentials, ErrorNotAuthenticated} {
		wrapped := fmt.Errorf("repo: %w", target)
		if !errors.Is(wrapped, target) {
			t.Fatalf("errors.Is lost %v through wrapping", target)
		}
	}
	if errors.Is(ErrorNotFound, ErrorDuplicateKey) {
		t.Fatal("distinct sentinels must not match")
	}
}
