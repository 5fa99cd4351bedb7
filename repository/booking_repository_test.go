package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"booking-service/models"
	"booking-service/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreateBooking_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormBookingRepo(gormDB)

	booking := models.NewBooking(models.BookingRequest{
		Adults:       2,
		CheckinDate:  "2024-01-01",
		CheckoutDate: "2024-01-05",
		HotelRoom:    "room42",
		NumberOfDays: 4,
		User:         "u1",
		TotalPrice:   400,
	}, "evt_1", "cs_test_1")

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "bookings"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
	mock.ExpectCommit()

	err := repo.CreateBooking(context.Background(), booking)
	assert.NoError(t, err)
	assert.Equal(t, id, booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_DBError(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormBookingRepo(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "bookings"`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.CreateBooking(context.Background(), &models.Booking{UserID: "u1", HotelRoomID: "room42"})
	assert.Error(t, err)
}

func TestFindByUser_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormBookingRepo(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "hotel_room_id", "checkin_date", "checkout_date", "adults", "children", "number_of_days", "discount", "total_price", "created_at", "updated_at"}).
		AddRow(uuid.New(), "u1", "room42", "2024-01-01", "2024-01-05", 2, 0, 4, 0.0, 400.0, now, now).
		AddRow(uuid.New(), "u1", "room7", "2024-02-01", "2024-02-02", 1, 1, 1, 10.0, 90.0, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings"`)).
		WithArgs("u1").
		WillReturnRows(rows)

	bookings, err := repo.FindByUser(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, "room42", bookings[0].HotelRoomID)
	assert.Equal(t, 4, bookings[0].NumberOfDays)
}
