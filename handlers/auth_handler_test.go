package handlers

import (
	"testing"
	"time"
)

func TestResetTokenExpired(t *testing.T) {
	t.Run("Given a future expiry When checking Then the token is still valid", func(t *testing.T) {
		future := time.Now().Add(10 * time.Minute)
		if resetTokenExpired(&future) {
			t.Error("resetTokenExpired() = true for a future expiry")
		}
	})

	t.Run("Given a past expiry When checking Then the token is expired", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		if !resetTokenExpired(&past) {
			t.Error("resetTokenExpired() = false for a past expiry")
		}
	})

	t.Run("Given no expiry at all When checking Then the token is treated as expired", func(t *testing.T) {
		if !resetTokenExpired(nil) {
			t.Error("resetTokenExpired() = false for a nil expiry")
		}
	})
}
