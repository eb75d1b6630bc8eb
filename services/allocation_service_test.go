package services

import (
	"testing"

	"github.com/antoniodasilva12/hostelmng/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func testRooms() []models.Room {
	return []models.Room{
		{RoomNumber: "A101", FloorNumber: 1, RoomType: "single", PricePerSemester: 25000, Facilities: "wifi,desk"},
		{RoomNumber: "B201", FloorNumber: 2, RoomType: "double", PricePerSemester: 18000, Facilities: "wifi,balcony"},
		{RoomNumber: "B202", FloorNumber: 2, RoomType: "single", PricePerSemester: 26000, Facilities: "wifi, desk, balcony"},
		{RoomNumber: "C301", FloorNumber: 3, RoomType: "triple", PricePerSemester: 12000, Facilities: ""},
	}
}

func TestRankRooms(t *testing.T) {
	t.Run("Given a type preference When ranking Then exact type matches score highest", func(t *testing.T) {
		ranked, err := RankRooms(testRooms(), RoomPreference{RoomType: "single"})
		if err != nil {
			t.Fatalf("RankRooms() unexpected error: %v", err)
		}
		if ranked[0].Room.RoomType != "single" {
			t.Errorf("top room type = %q, want single", ranked[0].Room.RoomType)
		}
		if ranked[0].Score != 100 {
			t.Errorf("top score = %d, want 100", ranked[0].Score)
		}
	})

	t.Run("Given floor and facility preferences When ranking Then scores stack", func(t *testing.T) {
		pref := RoomPreference{
			RoomType:       "single",
			FloorNumber:    intPtr(2),
			NearFacilities: []string{"WiFi", "Desk"},
		}
		ranked, err := RankRooms(testRooms(), pref)
		if err != nil {
			t.Fatalf("RankRooms() unexpected error: %v", err)
		}

		// B202: type 100 + floor 50 + wifi 25 + desk 25.
		if ranked[0].Room.RoomNumber != "B202" {
			t.Errorf("top room = %q, want B202", ranked[0].Room.RoomNumber)
		}
		if ranked[0].Score != 200 {
			t.Errorf("top score = %d, want 200", ranked[0].Score)
		}
	})

	t.Run("Given a facility preference When the amenity list has spacing and casing differences Then it still matches", func(t *testing.T) {
		rooms := []models.Room{
			{RoomNumber: "D401", RoomType: "double", Facilities: " WIFI , Balcony "},
		}
		ranked, err := RankRooms(rooms, RoomPreference{RoomType: "double", NearFacilities: []string{"wifi", "balcony"}})
		if err != nil {
			t.Fatalf("RankRooms() unexpected error: %v", err)
		}
		if ranked[0].Score != 150 {
			t.Errorf("score = %d, want 150", ranked[0].Score)
		}
	})

	t.Run("Given a price ceiling When ranking Then rooms above it are dropped", func(t *testing.T) {
		ranked, err := RankRooms(testRooms(), RoomPreference{RoomType: "single", MaxPrice: floatPtr(20000)})
		if err != nil {
			t.Fatalf("RankRooms() unexpected error: %v", err)
		}
		if len(ranked) != 2 {
			t.Fatalf("got %d rooms, want 2 within the ceiling", len(ranked))
		}
		for _, r := range ranked {
			if r.Room.PricePerSemester > 20000 {
				t.Errorf("room %s priced %v exceeds ceiling", r.Room.RoomNumber, r.Room.PricePerSemester)
			}
		}
	})

	t.Run("Given no room survives the ceiling When ranking Then an error is returned", func(t *testing.T) {
		_, err := RankRooms(testRooms(), RoomPreference{RoomType: "single", MaxPrice: floatPtr(1000)})
		if err == nil {
			t.Fatal("RankRooms() expected error when nothing matches")
		}
	})

	t.Run("Given an empty room list When ranking Then an error is returned", func(t *testing.T) {
		_, err := RankRooms(nil, RoomPreference{RoomType: "single"})
		if err == nil {
			t.Fatal("RankRooms() expected error for empty room list")
		}
	})

	t.Run("Given several rooms When ranking Then the order is highest score first", func(t *testing.T) {
		ranked, err := RankRooms(testRooms(), RoomPreference{RoomType: "single", FloorNumber: intPtr(1)})
		if err != nil {
			t.Fatalf("RankRooms() unexpected error: %v", err)
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i].Score > ranked[i-1].Score {
				t.Errorf("rooms out of order at %d: %d > %d", i, ranked[i].Score, ranked[i-1].Score)
			}
		}
	})
}
