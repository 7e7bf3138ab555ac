package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joshbaje/drively-backend/internal/domain"
	"github.com/joshbaje/drively-backend/internal/pricing"
	"github.com/joshbaje/drively-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookingService struct{ mock.Mock }

func (m *mockBookingService) GetQuote(ctx context.Context, vehicleID string, start, end time.Time, insuranceSelected bool, discountCents int64) (*pricing.PriceQuote, error) {
	args := m.Called(ctx, vehicleID, start, end, insuranceSelected, discountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.PriceQuote), args.Error(1)
}

func (m *mockBookingService) CheckAvailability(ctx context.Context, vehicleID string, start, end time.Time) (*pricing.AvailabilityResult, error) {
	args := m.Called(ctx, vehicleID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.AvailabilityResult), args.Error(1)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, renterID, vehicleID string, start, end time.Time, insuranceSelected bool, discountCents int64) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, vehicleID, start, end, insuranceSelected, discountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) ConfirmBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) DeclineBooking(ctx context.Context, ownerID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, ownerID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, renterID, bookingID, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, renterID, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) ListRenterBookings(ctx context.Context, renterID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	args := m.Called(ctx, renterID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}

func (m *mockBookingService) ListOwnerBookings(ctx context.Context, ownerID string, status domain.BookingStatus, page, pageSize int) ([]domain.Booking, int, error) {
	args := m.Called(ctx, ownerID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Int(1), args.Error(2)
}

type stubVerifier struct{ userID string }

func (s stubVerifier) ValidateToken(token string) (*security.UserClaims, error) {
	if token != "valid-token" {
		return nil, security.ErrInvalidToken
	}
	return &security.UserClaims{UserID: s.userID}, nil
}

func quoteBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"vehicle_id": "veh-1",
		"start_at":   "2024-03-01",
		"end_at":     "2024-03-06",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestBookingHandler_GetQuote(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := &mockBookingService{}
		svc.On("GetQuote", mock.Anything, "veh-1", mock.Anything, mock.Anything, false, int64(0)).
			Return(&pricing.PriceQuote{Days: 5, TotalCents: 627500}, nil)

		h := NewBookingHandler(svc)
		rec := httptest.NewRecorder()
		h.GetQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", quoteBody(t)))

		require.Equal(t, http.StatusOK, rec.Code)
		var quote pricing.PriceQuote
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
		assert.Equal(t, int64(627500), quote.TotalCents)
	})

	t.Run("Unavailable maps to 409 with conflicts", func(t *testing.T) {
		svc := &mockBookingService{}
		conflict := pricing.Conflict{
			Type: pricing.ConflictTypeBooking,
			ID:   "bk-1",
			Range: pricing.DateRange{
				Start: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			},
		}
		svc.On("GetQuote", mock.Anything, "veh-1", mock.Anything, mock.Anything, false, int64(0)).
			Return(nil, &pricing.UnavailableError{Conflicts: []pricing.Conflict{conflict}})

		h := NewBookingHandler(svc)
		rec := httptest.NewRecorder()
		h.GetQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", quoteBody(t)))

		require.Equal(t, http.StatusConflict, rec.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "bk-1", resp.Conflicts[0].ID)
	})

	t.Run("Duration bound maps to 422", func(t *testing.T) {
		svc := &mockBookingService{}
		svc.On("GetQuote", mock.Anything, "veh-1", mock.Anything, mock.Anything, false, int64(0)).
			Return(nil, &pricing.DurationTooShortError{MinDays: 3, ActualDays: 1})

		h := NewBookingHandler(svc)
		rec := httptest.NewRecorder()
		h.GetQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", quoteBody(t)))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("Garbage body maps to 400", func(t *testing.T) {
		h := NewBookingHandler(&mockBookingService{})
		rec := httptest.NewRecorder()
		h.GetQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewBufferString("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Bad timestamp maps to 400", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"vehicle_id": "veh-1", "start_at": "yesterday", "end_at": "2024-03-06",
		})
		h := NewBookingHandler(&mockBookingService{})
		rec := httptest.NewRecorder()
		h.GetQuote(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", bytes.NewBuffer(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_Auth(t *testing.T) {
	svc := &mockBookingService{}
	router := NewRouter(svc, nil, stubVerifier{userID: "usr-1"})

	t.Run("Missing token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", quoteBody(t))
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Valid token reaches the handler with the caller identity", func(t *testing.T) {
		svc.On("CreateBooking", mock.Anything, "usr-1", "veh-1", mock.Anything, mock.Anything, false, int64(0)).
			Return(&domain.Booking{ID: "bk-1", RenterID: "usr-1", Status: domain.BookingStatusPending}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", quoteBody(t))
		req.Header.Set("Authorization", "Bearer valid-token")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var booking domain.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
		assert.Equal(t, "bk-1", booking.ID)
	})

	t.Run("Quote endpoint is public", func(t *testing.T) {
		svc.On("GetQuote", mock.Anything, "veh-1", mock.Anything, mock.Anything, false, int64(0)).
			Return(&pricing.PriceQuote{Days: 5}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/quotes", quoteBody(t)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	svc := &mockBookingService{}
	svc.On("CancelBooking", mock.Anything, "usr-1", "bk-1", "change of plans").
		Return(&domain.Booking{ID: "bk-1", Status: domain.BookingStatusCancelled, CancelReason: "change of plans"}, nil)

	router := NewRouter(svc, nil, stubVerifier{userID: "usr-1"})

	body, _ := json.Marshal(map[string]string{"reason": "change of plans"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/bk-1/cancel", bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer valid-token")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var booking domain.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
}
