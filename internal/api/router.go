package api

import (
	"net/http"

	"github.com/joshbaje/drively-backend/internal/security"
	"github.com/joshbaje/drively-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires the versioned API. Vehicle lookup, search, availability,
// and quoting are public; everything that acts on behalf of a user sits
// behind the bearer token middleware.
func NewRouter(bookings service.BookingService, vehicles service.VehicleService, verifier security.TokenVerifier) *mux.Router {
	bookingHandler := NewBookingHandler(bookings)
	vehicleHandler := NewVehicleHandler(vehicles)

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()

	// Public marketplace surface.
	v1.HandleFunc("/vehicles/search", vehicleHandler.SearchAvailable).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}", vehicleHandler.GetVehicle).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}/availability", bookingHandler.CheckAvailability).Methods(http.MethodGet)
	v1.HandleFunc("/vehicles/{id}/blackouts", vehicleHandler.ListBlackouts).Methods(http.MethodGet)
	v1.HandleFunc("/quotes", bookingHandler.GetQuote).Methods(http.MethodPost)

	// Authenticated surface.
	auth := v1.PathPrefix("/").Subrouter()
	auth.Use(AuthMiddleware(verifier))

	auth.HandleFunc("/vehicles", vehicleHandler.CreateVehicle).Methods(http.MethodPost)
	auth.HandleFunc("/vehicles/{id}", vehicleHandler.UpdateVehicle).Methods(http.MethodPut)
	auth.HandleFunc("/vehicles/{id}/blackouts", vehicleHandler.AddBlackout).Methods(http.MethodPost)
	auth.HandleFunc("/vehicles/{id}/blackouts/{blackoutID}", vehicleHandler.RemoveBlackout).Methods(http.MethodDelete)
	auth.HandleFunc("/my/vehicles", vehicleHandler.ListMyVehicles).Methods(http.MethodGet)

	auth.HandleFunc("/bookings", bookingHandler.CreateBooking).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}", bookingHandler.GetBooking).Methods(http.MethodGet)
	auth.HandleFunc("/bookings/{id}/confirm", bookingHandler.ConfirmBooking).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}/decline", bookingHandler.DeclineBooking).Methods(http.MethodPost)
	auth.HandleFunc("/bookings/{id}/cancel", bookingHandler.CancelBooking).Methods(http.MethodPost)
	auth.HandleFunc("/my/bookings", bookingHandler.ListMyBookings).Methods(http.MethodGet)

	return r
}
