package app

import (
	"context"
	"time"

	"frontdesk/internal/domain"
)

type QueryService struct {
	rooms    domain.RoomStore
	ledger   domain.BillLedger
	cache    domain.Cache // nil disables caching
	cacheTTL time.Duration
}

func NewQueryService(rooms domain.RoomStore, ledger domain.BillLedger, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{rooms: rooms, ledger: ledger, cache: c, cacheTTL: ttl}
}

// GetBill serves saved bills, optionally through the cache. Bills are
// immutable once saved, so cached entries never go stale.
func (s *QueryService) GetBill(ctx context.Context, billNo string) (domain.Bill, error) {
	key := "bill:" + billNo
	if s.cache != nil {
		var b domain.Bill
		if ok, _ := s.cache.Get(ctx, key, &b); ok {
			return b, nil
		}
	}
	b, err := s.ledger.GetBill(ctx, billNo)
	if err != nil {
		return domain.Bill{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, b, int(s.cacheTTL.Seconds()))
	}
	return b, nil
}

// RoomStatuses always reads the store directly: the dashboard must reflect
// the latest persisted state, so room state is never cached.
func (s *QueryService) RoomStatuses(ctx context.Context) ([]domain.RoomState, error) {
	return s.rooms.AllRoomStatuses(ctx)
}

func (s *QueryService) ListBills(ctx context.Context) ([]domain.Bill, error) {
	return s.ledger.ListBills(ctx)
}

// QuotePreview is the live recalculation shown while the form is being
// filled in. An invalid or incomplete form previews as zeros; the preview
// never blocks typing, only saving does validation for real.
type QuotePreview struct {
	Valid    bool
	Nights   int
	Subtotal float64
	CGST     float64
	SGST     float64
	Total    float64
}

func PreviewQuote(checkIn, checkOut string, rate float64) QuotePreview {
	in := domain.BillInput{
		GuestName:    "-", // preview ignores identity fields
		RoomNumber:   "-",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Rate:         rate,
	}
	ci, co, err := in.Validate()
	if err != nil {
		return QuotePreview{}
	}
	q, err := domain.ComputeQuote(ci, co, rate)
	if err != nil {
		return QuotePreview{}
	}
	return QuotePreview{
		Valid:    true,
		Nights:   q.Nights,
		Subtotal: domain.Round2(q.Subtotal),
		CGST:     domain.Round2(q.CGST),
		SGST:     domain.Round2(q.SGST),
		Total:    domain.Round2(q.Total),
	}
}
