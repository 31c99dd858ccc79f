package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "frontdesk/internal/adapters/redis"
	"frontdesk/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	bill := domain.Bill{
		BillNo:       "BILL202501010001",
		GuestName:    "Asha Verma",
		RoomNumber:   "103",
		CheckInDate:  "01-01-2025",
		CheckOutDate: "03-01-2025",
		Nights:       2,
		Rate:         2000,
		Subtotal:     4000,
		CGST:         360,
		SGST:         360,
		Total:        4720,
		CreatedAt:    time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC),
	}

	if ok, _ := c.Get(ctx, "bill:"+bill.BillNo, &domain.Bill{}); ok {
		t.Fatal("expected miss on empty cache")
	}
	if err := c.Set(ctx, "bill:"+bill.BillNo, bill, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Bill
	ok, err := c.Get(ctx, "bill:"+bill.BillNo, &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.BillNo != bill.BillNo || got.Total != bill.Total || got.Nights != bill.Nights {
		t.Fatalf("round-trip mismatch: %+v", got)
	}

	if err := c.Del(ctx, "bill:"+bill.BillNo); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "bill:"+bill.BillNo, &got); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestCacheSetWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("k"); ttl != 60*time.Second {
		t.Fatalf("ttl = %v, want 60s", ttl)
	}
}
