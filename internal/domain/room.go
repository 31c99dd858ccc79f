package domain

type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomOccupied  RoomStatus = "occupied"
)

func (s RoomStatus) Valid() bool {
	return s == RoomAvailable || s == RoomOccupied
}

// RoomState pairs a room number with its current status. Listings are
// ordered by room number.
type RoomState struct {
	RoomNumber string
	Status     RoomStatus
}
