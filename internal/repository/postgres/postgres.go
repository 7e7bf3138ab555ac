package postgres

import (
	"database/sql"

	"github.com/joshbaje/drively-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.BookingRepository
	repository.BlackoutRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		VehicleRepository:  NewVehicleRepository(db),
		BookingRepository:  NewBookingRepository(db),
		BlackoutRepository: NewBlackoutRepository(db),
		UserRepository:     NewUserRepository(db),
	}
}
