package domain

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar format the front desk enters stay dates in.
const DateLayout = "02-01-2006"

// TaxRate is the CGST/SGST rate. Both taxes apply to the subtotal
// independently, so the effective rate is 2*TaxRate.
const TaxRate = 0.09

type Bill struct {
	BillNo       string
	GuestName    string
	RoomNumber   string
	CheckInDate  string // DD-MM-YYYY as entered; legacy rows may carry other layouts
	CheckOutDate string
	Nights       int
	Rate         float64
	Subtotal     float64
	CGST         float64
	SGST         float64
	Total        float64
	CreatedAt    time.Time
}

// Quote is the stay price breakdown before rounding.
type Quote struct {
	Nights   int
	Subtotal float64
	CGST     float64
	SGST     float64
	Total    float64
}

// ComputeQuote derives the price breakdown for a stay. Check-out must be
// strictly after check-in; the whole-day difference is the night count
// (calendar dates, so it is always >= 1 when the order is valid).
func ComputeQuote(checkIn, checkOut time.Time, rate float64) (Quote, error) {
	if !checkOut.After(checkIn) {
		return Quote{}, &ValidationError{Field: "check_out_date", Reason: "check-out date must be after check-in date"}
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	subtotal := float64(nights) * rate
	cgst := subtotal * TaxRate
	sgst := subtotal * TaxRate
	return Quote{
		Nights:   nights,
		Subtotal: subtotal,
		CGST:     cgst,
		SGST:     sgst,
		Total:    subtotal + cgst + sgst,
	}, nil
}

// BillInput is the raw billing form: dates are unparsed strings so that a
// bad format and a bad ordering surface as distinct field errors.
type BillInput struct {
	GuestName    string
	RoomNumber   string
	CheckInDate  string
	CheckOutDate string
	Rate         float64
}

// Validate checks every field and returns the parsed dates on success.
// It is called before any persistence; nothing is written for invalid input.
func (in BillInput) Validate() (checkIn, checkOut time.Time, err error) {
	if strings.TrimSpace(in.GuestName) == "" {
		return time.Time{}, time.Time{}, &ValidationError{Field: "guest_name", Reason: "guest name is required"}
	}
	if strings.TrimSpace(in.RoomNumber) == "" {
		return time.Time{}, time.Time{}, &ValidationError{Field: "room_number", Reason: "room number is required"}
	}
	checkIn, err = time.Parse(DateLayout, strings.TrimSpace(in.CheckInDate))
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "check_in_date", Reason: "date must be DD-MM-YYYY"}
	}
	checkOut, err = time.Parse(DateLayout, strings.TrimSpace(in.CheckOutDate))
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "check_out_date", Reason: "date must be DD-MM-YYYY"}
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, &ValidationError{Field: "check_out_date", Reason: "check-out date must be after check-in date"}
	}
	if math.IsNaN(in.Rate) || math.IsInf(in.Rate, 0) || in.Rate <= 0 {
		return time.Time{}, time.Time{}, &ValidationError{Field: "rate", Reason: "rate must be a positive number"}
	}
	return checkIn, checkOut, nil
}

// BuildBill validates the input, prices the stay and assembles the immutable
// record under the given bill number. Monetary amounts are rounded to two
// decimals here, at the persistence boundary, never mid-calculation.
func BuildBill(in BillInput, billNo string, now time.Time) (Bill, error) {
	checkIn, checkOut, err := in.Validate()
	if err != nil {
		return Bill{}, err
	}
	q, err := ComputeQuote(checkIn, checkOut, in.Rate)
	if err != nil {
		return Bill{}, err
	}
	return Bill{
		BillNo:       billNo,
		GuestName:    strings.TrimSpace(in.GuestName),
		RoomNumber:   strings.TrimSpace(in.RoomNumber),
		CheckInDate:  strings.TrimSpace(in.CheckInDate),
		CheckOutDate: strings.TrimSpace(in.CheckOutDate),
		Nights:       q.Nights,
		Rate:         in.Rate,
		Subtotal:     Round2(q.Subtotal),
		CGST:         Round2(q.CGST),
		SGST:         Round2(q.SGST),
		Total:        Round2(q.Total),
		CreatedAt:    now,
	}, nil
}

// Round2 rounds a monetary amount to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
