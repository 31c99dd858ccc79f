package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"frontdesk/internal/app"
	"frontdesk/internal/domain"
)

type Handlers struct {
	B *app.BillingService
	Q *app.QueryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Field  string `json:"field,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Post("/v1/quotes", h.previewQuote)
	s.mux.Post("/v1/rooms/{room}/bills", h.createBill)
	s.mux.Post("/v1/rooms/{room}/checkout", h.checkout)
	s.mux.Get("/v1/bills", h.listBills)
	s.mux.Get("/v1/bills/{billNo}", h.getBill)
	s.mux.Get("/v1/bills/{billNo}/receipt", h.downloadReceipt)
	s.mux.Post("/v1/bills/{billNo}/receipt/print", h.printReceipt)
	s.mux.Post("/v1/bills/{billNo}/receipt/open", h.openReceipt)
}

// ---- DTOs ----

type roomDTO struct {
	RoomNumber string `json:"room_number"`
	Status     string `json:"status"`
}

type quoteRequest struct {
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Rate         float64 `json:"rate"`
}

type quoteDTO struct {
	Valid    bool    `json:"valid"`
	Nights   int     `json:"nights"`
	Subtotal float64 `json:"subtotal"`
	CGST     float64 `json:"cgst"`
	SGST     float64 `json:"sgst"`
	Total    float64 `json:"total"`
}

type billRequest struct {
	GuestName    string  `json:"guest_name"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Rate         float64 `json:"rate"`
}

type billDTO struct {
	BillNo       string  `json:"bill_no"`
	GuestName    string  `json:"guest_name"`
	RoomNumber   string  `json:"room_number"`
	CheckInDate  string  `json:"check_in_date"`
	CheckOutDate string  `json:"check_out_date"`
	Nights       int     `json:"nights"`
	Rate         float64 `json:"rate"`
	Subtotal     float64 `json:"subtotal"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	Total        float64 `json:"total"`
	CreatedAt    string  `json:"created_at"`
}

type billCreatedDTO struct {
	billDTO
	ReceiptPath  string `json:"receipt_path,omitempty"`
	ReceiptError string `json:"receipt_error,omitempty"`
}

func toBillDTO(b domain.Bill) billDTO {
	return billDTO{
		BillNo:       b.BillNo,
		GuestName:    b.GuestName,
		RoomNumber:   b.RoomNumber,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		Nights:       b.Nights,
		Rate:         b.Rate,
		Subtotal:     b.Subtotal,
		CGST:         b.CGST,
		SGST:         b.SGST,
		Total:        b.Total,
		CreatedAt:    b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ---- handlers ----

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	states, err := h.Q.RoomStatuses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]roomDTO, 0, len(states))
	for _, st := range states {
		out = append(out, roomDTO{RoomNumber: st.RoomNumber, Status: string(st.Status)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) previewQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	p := app.PreviewQuote(req.CheckInDate, req.CheckOutDate, req.Rate)
	writeJSON(w, http.StatusOK, quoteDTO{
		Valid:    p.Valid,
		Nights:   p.Nights,
		Subtotal: p.Subtotal,
		CGST:     p.CGST,
		SGST:     p.SGST,
		Total:    p.Total,
	})
}

func (h *Handlers) createBill(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.B.CreateBill)
}

func (h *Handlers) checkout(w http.ResponseWriter, r *http.Request) {
	h.settle(w, r, h.B.Checkout)
}

func (h *Handlers) settle(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, in domain.BillInput) (app.BillResult, error)) {
	var req billRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	in := domain.BillInput{
		GuestName:    req.GuestName,
		RoomNumber:   chi.URLParam(r, "room"),
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Rate:         req.Rate,
	}
	res, err := action(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	out := billCreatedDTO{billDTO: toBillDTO(res.Bill), ReceiptPath: res.ReceiptPath}
	if res.ReceiptErr != nil {
		out.ReceiptError = res.ReceiptErr.Error()
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.Q.ListBills(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]billDTO, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillDTO(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getBill(w http.ResponseWriter, r *http.Request) {
	b, err := h.Q.GetBill(r.Context(), chi.URLParam(r, "billNo"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillDTO(b))
}

func (h *Handlers) downloadReceipt(w http.ResponseWriter, r *http.Request) {
	path, err := h.B.ReceiptFile(r.Context(), chi.URLParam(r, "billNo"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, path)
}

func (h *Handlers) printReceipt(w http.ResponseWriter, r *http.Request) {
	path, err := h.B.PrintReceipt(r.Context(), chi.URLParam(r, "billNo"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"receipt_path": path})
}

func (h *Handlers) openReceipt(w http.ResponseWriter, r *http.Request) {
	path, err := h.B.OpenReceipt(r.Context(), chi.URLParam(r, "billNo"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"receipt_path": path})
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the error taxonomy: validation 422 with the offending
// field, duplicates 409, missing bills 404, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		p := problem{Type: "about:blank", Title: "Validation Failed", Status: http.StatusUnprocessableEntity, Detail: ve.Reason, Field: ve.Field}
		if err := json.NewEncoder(w).Encode(p); err != nil {
			log.Error().Err(err).Msg("write JSON problem response failed")
		}
	case errors.Is(err, domain.ErrDuplicateBill):
		writeProblem(w, http.StatusConflict, "Duplicate Bill", err.Error())
	case errors.Is(err, domain.ErrBillNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", err.Error())
	}
}
