package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"frontdesk/internal/domain"
)

// BillingService runs the front-desk billing actions: generate a bill for a
// room, check a room out, and re-deliver receipts for saved bills.
type BillingService struct {
	rooms          domain.RoomStore
	ledger         domain.BillLedger
	receipts       domain.ReceiptRenderer
	delivery       domain.DocumentDelivery
	autoOpen       bool
	onRoomsChanged func()
}

func NewBillingService(rooms domain.RoomStore, ledger domain.BillLedger, receipts domain.ReceiptRenderer, delivery domain.DocumentDelivery) *BillingService {
	return &BillingService{rooms: rooms, ledger: ledger, receipts: receipts, delivery: delivery}
}

// OnRoomsChanged registers the dashboard refresh hook, called after every
// room-status mutation.
func (s *BillingService) OnRoomsChanged(fn func()) { s.onRoomsChanged = fn }

// SetAutoOpen makes successful bill generation also open the receipt in the
// host's default viewer (single-workstation setups).
func (s *BillingService) SetAutoOpen(v bool) { s.autoOpen = v }

// BillResult reports a settled bill. ReceiptErr is a non-fatal export
// failure: the bill is already durably saved when rendering runs.
type BillResult struct {
	Bill        domain.Bill
	ReceiptPath string
	ReceiptErr  error
}

// CreateBill validates the form, persists a new bill and marks the room
// occupied.
func (s *BillingService) CreateBill(ctx context.Context, in domain.BillInput) (BillResult, error) {
	return s.settle(ctx, in, domain.RoomOccupied)
}

// Checkout persists the final bill and releases the room.
func (s *BillingService) Checkout(ctx context.Context, in domain.BillInput) (BillResult, error) {
	return s.settle(ctx, in, domain.RoomAvailable)
}

func (s *BillingService) settle(ctx context.Context, in domain.BillInput, after domain.RoomStatus) (BillResult, error) {
	// Fail fast: invalid input consumes no bill number and writes nothing.
	if _, _, err := in.Validate(); err != nil {
		return BillResult{}, err
	}

	now := time.Now()
	billNo, err := s.ledger.NextBillNumber(ctx, now)
	if err != nil {
		return BillResult{}, err
	}
	bill, err := domain.BuildBill(in, billNo, now)
	if err != nil {
		return BillResult{}, err
	}
	if err := s.ledger.SaveBill(ctx, bill); err != nil {
		return BillResult{}, err
	}

	if err := s.rooms.SetRoomStatus(ctx, bill.RoomNumber, after); err != nil {
		// The bill is saved; the stuck room status is still a hard error
		// for the operator to see.
		return BillResult{Bill: bill}, err
	}
	s.notifyRooms()

	res := BillResult{Bill: bill}
	path, err := s.receipts.Render(bill)
	if err != nil {
		log.Warn().Str("bill_no", bill.BillNo).Err(err).Msg("receipt render failed after save")
		res.ReceiptErr = err
		return res, nil
	}
	res.ReceiptPath = path

	if s.autoOpen {
		if err := s.delivery.OpenViewer(path); err != nil {
			log.Warn().Str("path", path).Err(err).Msg("receipt viewer launch failed")
		}
	}
	return res, nil
}

// ReceiptFile regenerates the receipt for a saved bill and returns its
// path. Rendering is deterministic, so this is safe to call repeatedly.
func (s *BillingService) ReceiptFile(ctx context.Context, billNo string) (string, error) {
	bill, err := s.ledger.GetBill(ctx, billNo)
	if err != nil {
		return "", err
	}
	return s.receipts.Render(bill)
}

// PrintReceipt renders the receipt for a saved bill and hands it to the
// printer. A delivery failure is logged as a warning only; the render path
// is still returned.
func (s *BillingService) PrintReceipt(ctx context.Context, billNo string) (string, error) {
	path, err := s.ReceiptFile(ctx, billNo)
	if err != nil {
		return "", err
	}
	if err := s.delivery.SendToPrinter(path); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("printer delivery failed")
	}
	return path, nil
}

// OpenReceipt renders the receipt and opens it in the host's viewer,
// best-effort.
func (s *BillingService) OpenReceipt(ctx context.Context, billNo string) (string, error) {
	path, err := s.ReceiptFile(ctx, billNo)
	if err != nil {
		return "", err
	}
	if err := s.delivery.OpenViewer(path); err != nil {
		log.Warn().Str("path", path).Err(err).Msg("receipt viewer launch failed")
	}
	return path, nil
}

func (s *BillingService) notifyRooms() {
	if s.onRoomsChanged != nil {
		s.onRoomsChanged()
	}
}
