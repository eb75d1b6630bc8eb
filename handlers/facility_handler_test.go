package handlers

import (
	"testing"

	"github.com/antoniodasilva12/hostelmng/models"
)

func confirmedSlots(windows ...[2]string) []models.FacilityBooking {
	bookings := make([]models.FacilityBooking, 0, len(windows))
	for _, w := range windows {
		bookings = append(bookings, models.FacilityBooking{
			StartTime: w[0],
			EndTime:   w[1],
			Status:    "confirmed",
		})
	}
	return bookings
}

func TestCountOverlappingSlots(t *testing.T) {
	t.Run("Given no existing bookings When counting Then the slot is free", func(t *testing.T) {
		if got := countOverlappingSlots(nil, "10:00", "11:00"); got != 0 {
			t.Errorf("countOverlappingSlots() = %d, want 0", got)
		}
	})

	t.Run("Given a booking inside the requested window When counting Then it overlaps", func(t *testing.T) {
		existing := confirmedSlots([2]string{"10:15", "10:45"})
		if got := countOverlappingSlots(existing, "10:00", "11:00"); got != 1 {
			t.Errorf("countOverlappingSlots() = %d, want 1", got)
		}
	})

	t.Run("Given bookings that straddle each edge When counting Then both overlap", func(t *testing.T) {
		existing := confirmedSlots([2]string{"09:30", "10:30"}, [2]string{"10:30", "11:30"})
		if got := countOverlappingSlots(existing, "10:00", "11:00"); got != 2 {
			t.Errorf("countOverlappingSlots() = %d, want 2", got)
		}
	})

	t.Run("Given back-to-back bookings When counting Then a shared boundary does not overlap", func(t *testing.T) {
		existing := confirmedSlots([2]string{"09:00", "10:00"}, [2]string{"11:00", "12:00"})
		if got := countOverlappingSlots(existing, "10:00", "11:00"); got != 0 {
			t.Errorf("countOverlappingSlots() = %d, want 0", got)
		}
	})

	t.Run("Given two identical concurrent requests When the first is confirmed Then the second counts it", func(t *testing.T) {
		existing := confirmedSlots([2]string{"10:00", "11:00"})
		if got := countOverlappingSlots(existing, "10:00", "11:00"); got != 1 {
			t.Errorf("countOverlappingSlots() = %d, want 1", got)
		}
	})
}
