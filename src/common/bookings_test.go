package common

import (
	"castbook/src/types"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPartitionTalentIDs(t *testing.T) {
	toCreate, skipped := PartitionTalentIDs([]uint{1, 2, 3}, []uint{2})
	assert.Equal(t, []uint{1, 3}, toCreate)
	assert.Equal(t, []uint{2}, skipped)
}

func TestPartitionTalentIDsDeduplicatesRequest(t *testing.T) {
	toCreate, skipped := PartitionTalentIDs([]uint{5, 5, 6, 5}, nil)
	assert.Equal(t, []uint{5, 6}, toCreate)
	assert.Empty(t, skipped)
}

func TestPartitionTalentIDsAllExisting(t *testing.T) {
	toCreate, skipped := PartitionTalentIDs([]uint{7, 8}, []uint{7, 8, 9})
	assert.Empty(t, toCreate)
	assert.Equal(t, []uint{7, 8}, skipped)
}

func TestPartitionTalentIDsEmptyRequest(t *testing.T) {
	toCreate, skipped := PartitionTalentIDs(nil, []uint{1})
	assert.Empty(t, toCreate)
	assert.Empty(t, skipped)
}

func TestUniqueIDsPreservesOrder(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Equal(t, []uint{}, uniqueIDs(nil))
}

func TestSendTalentRequestsReportsRaceLosersAsSkipped(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "status"}).
			AddRow(5, "BK-2025-0001", "inquiry"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT "talent_id" FROM "booking_talents"`).
		WillReturnRows(sqlmock.NewRows([]string{"talent_id"}))
	// both inserts lose to a concurrent fan-out, ON CONFLICT returns no rows
	mock.ExpectQuery(`INSERT INTO "booking_talents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "booking_talents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	created, skipped, err := SendTalentRequests(5, []uint{3, 4})
	assert.Nil(t, err)
	assert.Empty(t, created)
	assert.Equal(t, []uint{3, 4}, skipped)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRetriesOnCodeCollision(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	booking, err := CreateBooking(&types.CreateBookingRequestBody{
		Title:    "Lookbook shoot",
		StartsAt: "2031-05-01 09:00:00 +00:00",
		EndsAt:   "2031-05-01 17:00:00 +00:00",
	}, 9, 9)
	assert.Nil(t, err)
	assert.Equal(t, fmt.Sprintf("BK-%d-0003", time.Now().Year()), booking.Code)
	assert.Nil(t, mock.ExpectationsWereMet())
}
