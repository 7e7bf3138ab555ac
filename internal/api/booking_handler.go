package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type quoteRequest struct {
	VehicleID         string `json:"vehicle_id"`
	StartAt           string `json:"start_at"`
	EndAt             string `json:"end_at"`
	InsuranceSelected bool   `json:"insurance_selected"`
	DiscountCents     int64  `json:"discount_amount"`
}

// GetQuote prices a proposed rental without creating anything. The response
// is an estimate; the authoritative price is frozen at booking creation.
func (h *BookingHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.VehicleID == "" {
		writeBadRequest(w, "vehicle_id is required")
		return
	}
	start, end, err := parseWindow(req.StartAt, req.EndAt)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.DiscountCents < 0 {
		writeBadRequest(w, "discount_amount must not be negative")
		return
	}

	quote, err := h.bookings.GetQuote(r.Context(), req.VehicleID, start, end, req.InsuranceSelected, req.DiscountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID := mux.Vars(r)["id"]
	start, end, err := parseWindow(r.URL.Query().Get("start_at"), r.URL.Query().Get("end_at"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	result, err := h.bookings.CheckAvailability(r.Context(), vehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type createBookingRequest struct {
	VehicleID         string `json:"vehicle_id"`
	StartAt           string `json:"start_at"`
	EndAt             string `json:"end_at"`
	InsuranceSelected bool   `json:"insurance_selected"`
	DiscountCents     int64  `json:"discount_amount"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.VehicleID == "" {
		writeBadRequest(w, "vehicle_id is required")
		return
	}
	start, end, err := parseWindow(req.StartAt, req.EndAt)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.DiscountCents < 0 {
		writeBadRequest(w, "discount_amount must not be negative")
		return
	}

	booking, err := h.bookings.CreateBooking(r.Context(), userIDFrom(r.Context()), req.VehicleID, start, end, req.InsuranceSelected, req.DiscountCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.GetBooking(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.ConfirmBooking(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) DeclineBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookings.DeclineBooking(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	booking, err := h.bookings.CancelBooking(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// ListMyBookings serves both sides of the marketplace: role=renter (default)
// lists the caller's trips, role=owner lists requests against their fleet.
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := domain.BookingStatus(q.Get("status"))
	page, pageSize := parsePagination(q.Get("page"), q.Get("page_size"))
	userID := userIDFrom(r.Context())

	var (
		bookings []domain.Booking
		total    int
		err      error
	)
	if q.Get("role") == "owner" {
		bookings, total, err = h.bookings.ListOwnerBookings(r.Context(), userID, status, page, pageSize)
	} else {
		bookings, total, err = h.bookings.ListRenterBookings(r.Context(), userID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, listResponse{Items: bookings, Total: total, Page: page, PageSize: pageSize})
}

// parseWindow accepts RFC 3339 timestamps or bare dates. A bare date means
// midnight UTC, which matches the half-open day convention used throughout.
func parseWindow(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := parseTime(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTime(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, want RFC 3339 or YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

func parsePagination(pageStr, pageSizeStr string) (int, int) {
	page, _ := strconv.Atoi(pageStr)
	pageSize, _ := strconv.Atoi(pageSizeStr)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
