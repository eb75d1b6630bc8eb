package services

import (
	"errors"
	"strings"

	"github.com/antoniodasilva12/hostelmng/database"
	"github.com/antoniodasilva12/hostelmng/models"
)

type RoomPreference struct {
	RoomType       string   `json:"room_type" validate:"required,oneof=single double triple quad"`
	FloorNumber    *int     `json:"floor_number,omitempty"`
	NearFacilities []string `json:"near_facilities,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
}

type ScoredRoom struct {
	Room  models.Room `json:"room"`
	Score int         `json:"score"`
}

// FindOptimalRoom ranks every available room against a student's preferences
// and returns the best match.
func FindOptimalRoom(preferences RoomPreference) (*ScoredRoom, error) {
	var rooms []models.Room
	if err := database.DB.Where("status = ?", "available").Find(&rooms).Error; err != nil {
		return nil, err
	}

	best, err := RankRooms(rooms, preferences)
	if err != nil {
		return nil, err
	}
	return &best[0], nil
}

// RankRooms scores rooms highest-first: exact type match 100, preferred floor
// 50, each matched nearby facility 25. Rooms above the price ceiling are
// dropped entirely.
func RankRooms(rooms []models.Room, preferences RoomPreference) ([]ScoredRoom, error) {
	scored := make([]ScoredRoom, 0, len(rooms))
	for _, room := range rooms {
		if preferences.MaxPrice != nil && room.PricePerSemester > *preferences.MaxPrice {
			continue
		}
		scored = append(scored, ScoredRoom{Room: room, Score: scoreRoom(room, preferences)})
	}

	if len(scored) == 0 {
		return nil, errors.New("no available room matches the given preferences")
	}

	// Insertion sort; the hostel's room list is small.
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Score > scored[j-1].Score; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}

	return scored, nil
}

func scoreRoom(room models.Room, preferences RoomPreference) int {
	score := 0

	if room.RoomType == preferences.RoomType {
		score += 100
	}
	if preferences.FloorNumber != nil && room.FloorNumber == *preferences.FloorNumber {
		score += 50
	}

	if len(preferences.NearFacilities) > 0 {
		available := strings.Split(room.Facilities, ",")
		for _, wanted := range preferences.NearFacilities {
			for _, have := range available {
				if strings.EqualFold(strings.TrimSpace(have), strings.TrimSpace(wanted)) {
					score += 25
					break
				}
			}
		}
	}

	return score
}
