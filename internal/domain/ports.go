package domain

import (
	"context"
	"time"
)

type RoomStore interface {
	// InitRooms seeds the given room numbers as available. Idempotent:
	// rooms that already exist keep their current status.
	InitRooms(ctx context.Context, roomNumbers []string) error

	// RoomStatus returns available for unknown rooms (fail-open default).
	RoomStatus(ctx context.Context, roomNumber string) (RoomStatus, error)

	// AllRoomStatuses reads the latest persisted state, ordered by room
	// number. Never served from a cache.
	AllRoomStatuses(ctx context.Context) ([]RoomState, error)

	// SetRoomStatus upserts: setting the status of a room that was never
	// seeded creates it.
	SetRoomStatus(ctx context.Context, roomNumber string, status RoomStatus) error
}

type BillLedger interface {
	// NextBillNumber returns BILL + YYYYMMDD + a 4-digit sequence that is
	// 1 + the count of bills already carrying that day's prefix. The
	// sequence restarts at 0001 each calendar day.
	NextBillNumber(ctx context.Context, day time.Time) (string, error)

	// SaveBill persists a new immutable record in a single statement.
	// Returns ErrDuplicateBill when the number is taken.
	SaveBill(ctx context.Context, b Bill) error

	// GetBill returns ErrBillNotFound on miss.
	GetBill(ctx context.Context, billNo string) (Bill, error)

	// ListBills returns every bill, newest first.
	ListBills(ctx context.Context) ([]Bill, error)
}

// ReceiptRenderer writes a durable receipt document for a bill and returns
// its path. Rendering the same bill twice produces an equivalent document.
type ReceiptRenderer interface {
	Render(b Bill) (string, error)
}

// DocumentDelivery hands a rendered receipt to the OS, best-effort. Both
// operations report failure through their error only; they never block a
// bill that is already saved.
type DocumentDelivery interface {
	OpenViewer(path string) error
	SendToPrinter(path string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
