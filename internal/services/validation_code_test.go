package services

import (
	"testing"
)

func TestGenerateValidationCode(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		code, err := GenerateValidationCode(ValidationCodeLength)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != ValidationCodeLength {
			t.Fatalf("expected %d digits, got %q", ValidationCodeLength, code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("expected only digits, got %q", code)
			}
		}
		seen[code] = true
	}

	if len(seen) < 45 {
		t.Errorf("expected codes to vary, got %d distinct out of 50", len(seen))
	}
}
