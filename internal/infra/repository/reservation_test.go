//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/infra/pgquery"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationWriteQueries struct {
	mock.Mock
}

func (m *MockReservationWriteQueries) LockRestaurantDay(ctx context.Context, db pgquery.DBTX, arg pgquery.LockRestaurantDayParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockReservationWriteQueries) ListReservationsByRange(ctx context.Context, db pgquery.DBTX, arg pgquery.ListReservationsByRangeParams) ([]pgquery.Reservation, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]pgquery.Reservation), args.Error(1)
}

func (m *MockReservationWriteQueries) GetReservationByID(ctx context.Context, db pgquery.DBTX, arg pgquery.GetReservationByIDParams) (pgquery.Reservation, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(pgquery.Reservation), args.Error(1)
}

func (m *MockReservationWriteQueries) CreateReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.CreateReservationParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockReservationWriteQueries) UpdateReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateReservationParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationWriteQueries) DeleteReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.DeleteReservationParams) (pgquery.Reservation, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(pgquery.Reservation), args.Error(1)
}

// pgquery.DBTX stand-in; the repository only forwards it.
type nopDBTX struct{}

func (nopDBTX) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (nopDBTX) Query(context.Context, string, ...interface{}) (pgx.Rows, error) { return nil, nil }
func (nopDBTX) QueryRow(context.Context, string, ...interface{}) pgx.Row        { return nil }

func sampleRow(at time.Time, quantity int32) pgquery.Reservation {
	return pgquery.Reservation{
		ID:           uuid.New(),
		RestaurantID: 1,
		At:           pgconv.TimeToPgtype(at),
		Email:        "guest@example.com",
		Name:         "Guest",
		Quantity:     quantity,
	}
}

func TestDayNumber(t *testing.T) {
	assert.Equal(t, int32(0), DayNumber(time.Date(1970, 1, 1, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, int32(1), DayNumber(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)))

	loc := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2024, 5, 7, 22, 0, 0, 0, loc)
	assert.Equal(t, DayNumber(time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)), DayNumber(late),
		"the local calendar day decides the key, not the UTC instant")
}

func TestReservationRepository_LockDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	q := new(MockReservationWriteQueries)
	repo := NewReservationRepository(q, loc)

	instant := time.Date(2024, 5, 7, 20, 0, 0, 0, time.UTC) // 2024-05-08 05:00 local
	q.On("LockRestaurantDay", mock.Anything, mock.Anything, pgquery.LockRestaurantDayParams{
		RestaurantID: 2112,
		Day:          DayNumber(time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)),
	}).Return(nil)

	require.NoError(t, repo.LockDay(context.Background(), nopDBTX{}, 2112, instant))
	q.AssertExpectations(t)
}

func TestReservationRepository_ListByRange(t *testing.T) {
	from := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	t.Run("converts rows in store order", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		repo := NewReservationRepository(q, time.UTC)
		rows := []pgquery.Reservation{sampleRow(from.Add(19*time.Hour), 2), sampleRow(from.Add(18*time.Hour), 4)}
		q.On("ListReservationsByRange", mock.Anything, mock.Anything, pgquery.ListReservationsByRangeParams{
			RestaurantID: 1,
			From:         pgconv.TimeToPgtype(from),
			To:           pgconv.TimeToPgtype(to),
		}).Return(rows, nil)

		got, err := repo.ListByRange(context.Background(), nopDBTX{}, 1, from, to)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, rows[0].ID, got[0].ID())
		assert.Equal(t, rows[1].ID, got[1].ID())
	})

	t.Run("database error", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		repo := NewReservationRepository(q, time.UTC)
		q.On("ListReservationsByRange", mock.Anything, mock.Anything, mock.Anything).
			Return([]pgquery.Reservation(nil), assert.AnError)

		_, err := repo.ListByRange(context.Background(), nopDBTX{}, 1, from, to)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepository_FindByID(t *testing.T) {
	q := new(MockReservationWriteQueries)
	repo := NewReservationRepository(q, time.UTC)
	id := uuid.New()

	q.On("GetReservationByID", mock.Anything, mock.Anything, pgquery.GetReservationByIDParams{RestaurantID: 1, ID: id}).
		Return(pgquery.Reservation{}, pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), nopDBTX{}, 1, id)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestReservationRepository_Create(t *testing.T) {
	at := time.Date(2024, 5, 7, 19, 0, 0, 0, time.UTC)
	email, _ := reservation.NewEmail("guest@example.com")
	name, _ := reservation.NewName("Guest")
	res, err := reservation.New(uuid.New(), at, email, name, 3)
	require.NoError(t, err)

	tests := []struct {
		name     string
		dbErr    error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "duplicate id", dbErr: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "deadlock", dbErr: &pgconn.PgError{Code: "40P01"}, wantKind: infra.KindContention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockReservationWriteQueries)
			repo := NewReservationRepository(q, time.UTC)
			q.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p pgquery.CreateReservationParams) bool {
				return p.ID == res.ID() && p.RestaurantID == 1 && p.Quantity == 3 && p.At.Time.Equal(at)
			})).Return(tt.dbErr)

			err := repo.Create(context.Background(), nopDBTX{}, 1, res)
			if tt.dbErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, infra.IsKind(err, tt.wantKind))
		})
	}

	t.Run("restaurant id out of range", func(t *testing.T) {
		repo := NewReservationRepository(new(MockReservationWriteQueries), time.UTC)
		err := repo.Create(context.Background(), nopDBTX{}, 1<<40, res)
		assert.ErrorIs(t, err, errs.ErrRestaurantNotFound)
	})
}

func TestReservationRepository_Update(t *testing.T) {
	email, _ := reservation.NewEmail("guest@example.com")
	res, err := reservation.New(uuid.New(), time.Now(), email, reservation.Name{}, 2)
	require.NoError(t, err)

	t.Run("no row matched", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		repo := NewReservationRepository(q, time.UTC)
		q.On("UpdateReservation", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		err := repo.Update(context.Background(), nopDBTX{}, 1, res)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("updated", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		repo := NewReservationRepository(q, time.UTC)
		q.On("UpdateReservation", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)

		assert.NoError(t, repo.Update(context.Background(), nopDBTX{}, 1, res))
	})
}

func TestReservationRepository_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("absent row is not an error", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		repo := NewReservationRepository(q, time.UTC)
		q.On("DeleteReservation", mock.Anything, mock.Anything, pgquery.DeleteReservationParams{RestaurantID: 1, ID: id}).
			Return(pgquery.Reservation{}, pgx.ErrNoRows)

		_, found, err := repo.Delete(context.Background(), nopDBTX{}, 1, id)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("returns the deleted reservation", func(t *testing.T) {
		q := new(MockReservationWriteQueries)
		repo := NewReservationRepository(q, time.UTC)
		row := sampleRow(time.Date(2024, 5, 7, 19, 0, 0, 0, time.UTC), 2)
		row.ID = id
		q.On("DeleteReservation", mock.Anything, mock.Anything, mock.Anything).Return(row, nil)

		deleted, found, err := repo.Delete(context.Background(), nopDBTX{}, 1, id)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, id, deleted.ID())
	})
}
