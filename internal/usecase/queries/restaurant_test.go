//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/queries"
	"restaurant-booking/tests/common/builder"
	queriesmock "restaurant-booking/tests/mock/queries"
	sharedmock "restaurant-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRestaurantQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	restaurants := sharedmock.NewMockRestaurantDirectory(ctrl)
	q := queries.NewRestaurantQueries(restaurants)

	hipgnosta, err := builder.NewRestaurantBuilder().BuildDomain()
	require.NoError(t, err)
	nono, err := builder.NewRestaurantBuilder().With(func(b *builder.RestaurantBuilder) {
		b.ID = 2112
		b.Name = "Nono"
	}).WithStandardTables(2, 2, 4, 4, 6).BuildDomain()
	require.NoError(t, err)

	t.Run("List", func(t *testing.T) {
		restaurants.EXPECT().FindAll(gomock.Any()).Return([]*restaurant.Restaurant{hipgnosta, nono}, nil).Times(1)

		views, err := q.List(context.Background())
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Hipgnosta", views[0].Name)
		assert.Equal(t, "18:00:00", views[0].OpensAt)
		assert.Equal(t, "21:00:00", views[0].LastSeating)
		assert.Equal(t, 6*time.Hour, views[0].SeatingDuration)
		assert.Equal(t, []queries.TableView{{Kind: "communal", Capacity: 10}}, views[0].Tables)
		assert.Len(t, views[1].Tables, 5)
		assert.Equal(t, "standard", views[1].Tables[0].Kind)
	})

	t.Run("List failure", func(t *testing.T) {
		restaurants.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("connection reset")).Times(1)

		_, err := q.List(context.Background())
		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})

	t.Run("GetByID", func(t *testing.T) {
		restaurants.EXPECT().FindByID(gomock.Any(), 2112).Return(nono, nil).Times(1)

		view, err := q.GetByID(context.Background(), 2112)
		require.NoError(t, err)
		assert.Equal(t, 2112, view.ID)
		assert.Equal(t, "Nono", view.Name)
	})

	t.Run("GetByID unknown restaurant", func(t *testing.T) {
		restaurants.EXPECT().FindByID(gomock.Any(), 99).
			Return(nil, infra.WrapRepoErr("restaurant not found", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		_, err := q.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, errs.ErrRestaurantNotFound)
	})
}

func TestReservationQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	restaurants := sharedmock.NewMockRestaurantDirectory(ctrl)
	store := queriesmock.NewMockReservationReadStore(ctrl)
	q := queries.NewReservationQueries(restaurants, store)

	rest, err := builder.NewRestaurantBuilder().BuildDomain()
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		restaurants.EXPECT().FindByID(gomock.Any(), rest.ID()).Return(rest, nil).Times(1)
		store.EXPECT().FindByID(gomock.Any(), rest.ID(), b.ID).Return(b.BuildView(rest.ID()), nil).Times(1)

		view, err := q.GetByID(context.Background(), rest.ID(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, view.ID)
		assert.Equal(t, b.Email, view.Email)
	})

	t.Run("reservation of another restaurant is not found", func(t *testing.T) {
		id := uuid.New()
		restaurants.EXPECT().FindByID(gomock.Any(), rest.ID()).Return(rest, nil).Times(1)
		store.EXPECT().FindByID(gomock.Any(), rest.ID(), id).
			Return(nil, infra.WrapRepoErr("reservation not found", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		_, err := q.GetByID(context.Background(), rest.ID(), id)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("unknown restaurant skips the store", func(t *testing.T) {
		restaurants.EXPECT().FindByID(gomock.Any(), 5).
			Return(nil, infra.WrapRepoErr("restaurant not found", pgx.ErrNoRows, infra.KindNotFound)).Times(1)

		_, err := q.GetByID(context.Background(), 5, uuid.New())
		assert.ErrorIs(t, err, errs.ErrRestaurantNotFound)
	})
}
