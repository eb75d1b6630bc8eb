package utils

import (
	"regexp"
	"testing"
)

func TestGeneratePaymentReference(t *testing.T) {
	pattern := regexp.MustCompile(`^PAY-\d+-[A-Z0-9]{6}$`)

	t.Run("Given a generated reference When inspected Then it matches the PAY format", func(t *testing.T) {
		ref := GeneratePaymentReference()
		if !pattern.MatchString(ref) {
			t.Errorf("reference %q does not match expected format", ref)
		}
	})

	t.Run("Given many generated references When compared Then they are distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			ref := GeneratePaymentReference()
			if seen[ref] {
				t.Fatalf("duplicate reference generated: %s", ref)
			}
			seen[ref] = true
		}
	})
}
