package api

import (
	"encoding/json"
	"net/http"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/service"

	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	vehicles service.VehicleService
}

func NewVehicleHandler(vehicles service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

type vehicleRequest struct {
	Make                 string `json:"make"`
	Model                string `json:"model"`
	Year                 int    `json:"year"`
	Plate                string `json:"plate"`
	Listed               bool   `json:"listed"`
	DailyRateCents       int64  `json:"daily_rate"`
	WeeklyRateCents      int64  `json:"weekly_rate"`
	MonthlyRateCents     int64  `json:"monthly_rate"`
	SecurityDepositCents int64  `json:"security_deposit"`
	MinRentalDays        int    `json:"min_rental_days"`
	MaxRentalDays        int    `json:"max_rental_days"`
}

func (req *vehicleRequest) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		Make:                 req.Make,
		Model:                req.Model,
		Year:                 req.Year,
		Plate:                req.Plate,
		Listed:               req.Listed,
		DailyRateCents:       req.DailyRateCents,
		WeeklyRateCents:      req.WeeklyRateCents,
		MonthlyRateCents:     req.MonthlyRateCents,
		SecurityDepositCents: req.SecurityDepositCents,
		MinRentalDays:        req.MinRentalDays,
		MaxRentalDays:        req.MaxRentalDays,
	}
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicle, err := h.vehicles.GetVehicle(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	vehicle := req.toDomain()
	if err := h.vehicles.CreateVehicle(r.Context(), userIDFrom(r.Context()), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	vehicle := req.toDomain()
	vehicle.ID = mux.Vars(r)["id"]
	if err := h.vehicles.UpdateVehicle(r.Context(), userIDFrom(r.Context()), vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) ListMyVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := parsePagination(q.Get("page"), q.Get("page_size"))

	vehicles, total, err := h.vehicles.ListOwnerVehicles(r.Context(), userIDFrom(r.Context()), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	writeJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total, Page: page, PageSize: pageSize})
}

// SearchAvailable lists vehicles free over a window. This is a pre-filter;
// the quote endpoint re-checks availability at booking time.
func (h *VehicleHandler) SearchAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, err := parseWindow(q.Get("start_at"), q.Get("end_at"))
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	page, pageSize := parsePagination(q.Get("page"), q.Get("page_size"))

	vehicles, total, err := h.vehicles.SearchAvailable(r.Context(), start, end, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	writeJSON(w, http.StatusOK, listResponse{Items: vehicles, Total: total, Page: page, PageSize: pageSize})
}

type blackoutRequest struct {
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
	Reason  string `json:"reason"`
}

func (h *VehicleHandler) AddBlackout(w http.ResponseWriter, r *http.Request) {
	var req blackoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	start, end, err := parseWindow(req.StartAt, req.EndAt)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	blackout, err := h.vehicles.AddBlackout(r.Context(), userIDFrom(r.Context()), mux.Vars(r)["id"], start, end, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, blackout)
}

func (h *VehicleHandler) RemoveBlackout(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.vehicles.RemoveBlackout(r.Context(), userIDFrom(r.Context()), vars["id"], vars["blackoutID"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VehicleHandler) ListBlackouts(w http.ResponseWriter, r *http.Request) {
	blackouts, err := h.vehicles.ListBlackouts(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if blackouts == nil {
		blackouts = []domain.BlackoutPeriod{}
	}
	writeJSON(w, http.StatusOK, blackouts)
}
