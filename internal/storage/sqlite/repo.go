package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"frontdesk/internal/adapters/observability"
	"frontdesk/internal/domain"
)

// createdAtLayout matches what the ledger has always stored in the date
// column; legacy rows used the same format.
const createdAtLayout = "2006-01-02 15:04:05"

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// ---- RoomStore ----

func (r *Repo) InitRooms(ctx context.Context, roomNumbers []string) error {
	for _, num := range roomNumbers {
		if _, err := r.db.ExecContext(ctx, seedRoomSQL, num); err != nil {
			observability.ObserveStorage("init_rooms", err)
			return &domain.StorageError{Op: "init rooms", Err: err}
		}
	}
	observability.ObserveStorage("init_rooms", nil)
	return nil
}

func (r *Repo) RoomStatus(ctx context.Context, roomNumber string) (domain.RoomStatus, error) {
	var status string
	err := r.db.QueryRowContext(ctx, selectRoomStatusSQL, roomNumber).Scan(&status)
	if err == sql.ErrNoRows {
		// Unknown room: fail-open default.
		observability.ObserveStorage("room_status", nil)
		return domain.RoomAvailable, nil
	}
	if err != nil {
		observability.ObserveStorage("room_status", err)
		return "", &domain.StorageError{Op: "room status", Err: err}
	}
	observability.ObserveStorage("room_status", nil)
	return domain.RoomStatus(status), nil
}

func (r *Repo) AllRoomStatuses(ctx context.Context) ([]domain.RoomState, error) {
	rows, err := r.db.QueryContext(ctx, selectAllRoomsSQL)
	if err != nil {
		observability.ObserveStorage("all_rooms", err)
		return nil, &domain.StorageError{Op: "list rooms", Err: err}
	}
	defer rows.Close()

	var out []domain.RoomState
	for rows.Next() {
		var rs domain.RoomState
		var status string
		if err := rows.Scan(&rs.RoomNumber, &status); err != nil {
			observability.ObserveStorage("all_rooms", err)
			return nil, &domain.StorageError{Op: "scan room", Err: err}
		}
		rs.Status = domain.RoomStatus(status)
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		observability.ObserveStorage("all_rooms", err)
		return nil, &domain.StorageError{Op: "list rooms", Err: err}
	}
	observability.ObserveStorage("all_rooms", nil)
	return out, nil
}

func (r *Repo) SetRoomStatus(ctx context.Context, roomNumber string, status domain.RoomStatus) error {
	if !status.Valid() {
		return &domain.ValidationError{Field: "status", Reason: "status must be available or occupied"}
	}
	if _, err := r.db.ExecContext(ctx, upsertRoomStatusSQL, roomNumber, string(status)); err != nil {
		observability.ObserveStorage("set_room_status", err)
		return &domain.StorageError{Op: "set room status", Err: err}
	}
	observability.ObserveStorage("set_room_status", nil)
	return nil
}

// ---- BillLedger ----

func (r *Repo) NextBillNumber(ctx context.Context, day time.Time) (string, error) {
	prefix := "BILL" + day.Format("20060102")
	var count int
	if err := r.db.QueryRowContext(ctx, countBillPrefixSQL, prefix+"%").Scan(&count); err != nil {
		observability.ObserveStorage("next_bill_number", err)
		return "", &domain.StorageError{Op: "count bills", Err: err}
	}
	observability.ObserveStorage("next_bill_number", nil)
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

func (r *Repo) SaveBill(ctx context.Context, b domain.Bill) error {
	_, err := r.db.ExecContext(ctx, insertBillSQL,
		b.BillNo,
		b.GuestName,
		b.RoomNumber,
		b.CheckInDate,
		b.CheckOutDate,
		b.Nights,
		b.Rate,
		b.Subtotal,
		b.CGST,
		b.SGST,
		b.Total,
		b.CreatedAt.Format(createdAtLayout),
	)
	if err != nil {
		observability.ObserveStorage("save_bill", err)
		// Only a bill_no collision is a duplicate. Other constraint
		// violations (foreign keys with _fk=1) are storage failures.
		var se sqlite3.Error
		if errors.As(err, &se) &&
			(se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique) {
			return domain.ErrDuplicateBill
		}
		return &domain.StorageError{Op: "save bill", Err: err}
	}
	observability.ObserveStorage("save_bill", nil)
	return nil
}

func (r *Repo) GetBill(ctx context.Context, billNo string) (domain.Bill, error) {
	row := r.db.QueryRowContext(ctx, selectBillSQL, billNo)
	b, err := scanBill(row.Scan)
	if err == sql.ErrNoRows {
		observability.ObserveStorage("get_bill", nil)
		return domain.Bill{}, domain.ErrBillNotFound
	}
	if err != nil {
		observability.ObserveStorage("get_bill", err)
		return domain.Bill{}, &domain.StorageError{Op: "get bill", Err: err}
	}
	observability.ObserveStorage("get_bill", nil)
	return b, nil
}

func (r *Repo) ListBills(ctx context.Context) ([]domain.Bill, error) {
	rows, err := r.db.QueryContext(ctx, listBillsSQL)
	if err != nil {
		observability.ObserveStorage("list_bills", err)
		return nil, &domain.StorageError{Op: "list bills", Err: err}
	}
	defer rows.Close()

	var out []domain.Bill
	for rows.Next() {
		b, err := scanBill(rows.Scan)
		if err != nil {
			observability.ObserveStorage("list_bills", err)
			return nil, &domain.StorageError{Op: "scan bill", Err: err}
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		observability.ObserveStorage("list_bills", err)
		return nil, &domain.StorageError{Op: "list bills", Err: err}
	}
	observability.ObserveStorage("list_bills", nil)
	return out, nil
}

func scanBill(scan func(...any) error) (domain.Bill, error) {
	var b domain.Bill
	var created string
	err := scan(
		&b.BillNo,
		&b.GuestName,
		&b.RoomNumber,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.Nights,
		&b.Rate,
		&b.Subtotal,
		&b.CGST,
		&b.SGST,
		&b.Total,
		&created,
	)
	if err != nil {
		return domain.Bill{}, err
	}
	// Legacy rows keep whatever timestamp text they had; an unparsable
	// value scans as the zero time rather than failing the read.
	if t, perr := time.Parse(createdAtLayout, created); perr == nil {
		b.CreatedAt = t
	}
	return b, nil
}
