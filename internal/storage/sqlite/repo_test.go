package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"frontdesk/internal/domain"
	sqliterepo "frontdesk/internal/storage/sqlite"
)

func newTestRepo(t *testing.T) *sqliterepo.Repo {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := sqliterepo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqliterepo.New(db)
}

var testRooms = []string{"101", "102", "103", "104", "105", "106"}

func testBill(billNo string, created time.Time) domain.Bill {
	return domain.Bill{
		BillNo:       billNo,
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
		CreatedAt:    created,
	}
}

// ---- rooms ----

func TestInitRoomsIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.InitRooms(ctx, testRooms); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := repo.SetRoomStatus(ctx, "103", domain.RoomOccupied); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Re-seeding must not reset 103 back to available.
	if err := repo.InitRooms(ctx, testRooms); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	st, err := repo.RoomStatus(ctx, "103")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st != domain.RoomOccupied {
		t.Fatalf("status = %s, want occupied", st)
	}
}

func TestRoomStatusRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	if err := repo.InitRooms(ctx, testRooms); err != nil {
		t.Fatalf("init: %v", err)
	}

	if err := repo.SetRoomStatus(ctx, "101", domain.RoomOccupied); err != nil {
		t.Fatalf("set: %v", err)
	}
	st, _ := repo.RoomStatus(ctx, "101")
	if st != domain.RoomOccupied {
		t.Fatalf("status = %s, want occupied", st)
	}

	if err := repo.SetRoomStatus(ctx, "101", domain.RoomAvailable); err != nil {
		t.Fatalf("set: %v", err)
	}
	st, _ = repo.RoomStatus(ctx, "101")
	if st != domain.RoomAvailable {
		t.Fatalf("status = %s, want available", st)
	}
}

func TestRoomStatusUnknownRoomDefaultsAvailable(t *testing.T) {
	repo := newTestRepo(t)
	st, err := repo.RoomStatus(context.Background(), "999")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if st != domain.RoomAvailable {
		t.Fatalf("status = %s, want available", st)
	}
}

func TestSetRoomStatusUpsertsUnknownRoom(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetRoomStatus(ctx, "201", domain.RoomOccupied); err != nil {
		t.Fatalf("set: %v", err)
	}
	st, _ := repo.RoomStatus(ctx, "201")
	if st != domain.RoomOccupied {
		t.Fatalf("status = %s, want occupied (upsert)", st)
	}
}

func TestSetRoomStatusRejectsBadStatus(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.SetRoomStatus(context.Background(), "101", domain.RoomStatus("demolished"))
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAllRoomStatusesOrdered(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	// seed out of order to prove the query sorts
	if err := repo.InitRooms(ctx, []string{"104", "101", "106", "103", "105", "102"}); err != nil {
		t.Fatalf("init: %v", err)
	}

	states, err := repo.AllRoomStatuses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(states) != 6 {
		t.Fatalf("len = %d, want 6", len(states))
	}
	for i, want := range testRooms {
		if states[i].RoomNumber != want {
			t.Fatalf("position %d = %s, want %s", i, states[i].RoomNumber, want)
		}
		if states[i].Status != domain.RoomAvailable {
			t.Fatalf("room %s status = %s, want available", want, states[i].Status)
		}
	}
}

// ---- bill numbers ----

func TestNextBillNumberSequenceWithinDay(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	day := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		no, err := repo.NextBillNumber(ctx, day)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		want := []string{"BILL202501030001", "BILL202501030002", "BILL202501030003"}[i-1]
		if no != want {
			t.Fatalf("number = %s, want %s", no, want)
		}
		if err := repo.SaveBill(ctx, testBill(no, day)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
}

func TestNextBillNumberResetsAtDayBoundary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	day1 := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	no, _ := repo.NextBillNumber(ctx, day1)
	if err := repo.SaveBill(ctx, testBill(no, day1)); err != nil {
		t.Fatalf("save: %v", err)
	}

	no2, err := repo.NextBillNumber(ctx, day2)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if no2 != "BILL202501040001" {
		t.Fatalf("number = %s, want BILL202501040001 (sequence resets daily)", no2)
	}
}

// ---- bills ----

func TestSaveAndGetBill(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2025, 1, 3, 11, 30, 0, 0, time.UTC)
	b := testBill("BILL202501030001", created)

	if err := repo.SaveBill(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.GetBill(ctx, b.BillNo)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != b {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, b)
	}
}

func TestSaveBillDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	b := testBill("BILL202501030001", time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC))

	if err := repo.SaveBill(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveBill(ctx, b); !errors.Is(err, domain.ErrDuplicateBill) {
		t.Fatalf("expected ErrDuplicateBill, got %v", err)
	}
}

// newEnforcingRepo opens the database the way cmd/api does, with foreign
// keys on, so constraint failures other than a bill_no collision show up.
func newEnforcingRepo(t *testing.T) *sqliterepo.Repo {
	t.Helper()
	db, err := sql.Open("sqlite3", "file::memory:?_fk=1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := sqliterepo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqliterepo.New(db)
}

func TestSaveBillUnknownRoomIsNotDuplicate(t *testing.T) {
	repo := newEnforcingRepo(t)
	ctx := context.Background()
	if err := repo.InitRooms(ctx, testRooms); err != nil {
		t.Fatalf("init: %v", err)
	}

	b := testBill("BILL202501030001", time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC))
	b.RoomNumber = "999"

	err := repo.SaveBill(ctx, b)
	if err == nil {
		t.Fatal("expected foreign key failure for unseeded room")
	}
	if errors.Is(err, domain.ErrDuplicateBill) {
		t.Fatalf("foreign key failure mislabeled as duplicate: %v", err)
	}
	var se *domain.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}

func TestSaveBillDuplicateWithForeignKeysOn(t *testing.T) {
	repo := newEnforcingRepo(t)
	ctx := context.Background()
	if err := repo.InitRooms(ctx, testRooms); err != nil {
		t.Fatalf("init: %v", err)
	}

	b := testBill("BILL202501030001", time.Date(2025, 1, 3, 11, 0, 0, 0, time.UTC))
	if err := repo.SaveBill(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.SaveBill(ctx, b); !errors.Is(err, domain.ErrDuplicateBill) {
		t.Fatalf("expected ErrDuplicateBill, got %v", err)
	}
}

func TestGetBillNotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.GetBill(context.Background(), "BILL000000000000"); !errors.Is(err, domain.ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestListBillsNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		no, _ := repo.NextBillNumber(ctx, base)
		if err := repo.SaveBill(ctx, testBill(no, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	bills, err := repo.ListBills(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("len = %d, want 3", len(bills))
	}
	if bills[0].BillNo != "BILL202501030003" || bills[2].BillNo != "BILL202501030001" {
		t.Fatalf("unexpected order: %s .. %s", bills[0].BillNo, bills[2].BillNo)
	}
}

func TestDistinctNumbersForIdenticalGuests(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	day := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)

	no1, _ := repo.NextBillNumber(ctx, day)
	if err := repo.SaveBill(ctx, testBill(no1, day)); err != nil {
		t.Fatalf("save: %v", err)
	}
	no2, _ := repo.NextBillNumber(ctx, day)
	if no1 == no2 {
		t.Fatalf("same guest/room/date produced duplicate number %s", no1)
	}
	if err := repo.SaveBill(ctx, testBill(no2, day)); err != nil {
		t.Fatalf("save second: %v", err)
	}
}
