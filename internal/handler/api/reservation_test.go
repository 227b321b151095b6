//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/handler/api"
	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/tests/common/builder"
	"restaurant-booking/tests/common/httptest"
	"restaurant-booking/tests/common/testutil"
	commandsmock "restaurant-booking/tests/mock/commands"
	queriesmock "restaurant-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries, time.UTC, config.NewTestConfig().Restaurant)

	s.router.POST("/restaurants/:restaurantId/reservations", s.handler.Create)
	s.router.GET("/restaurants/:restaurantId/reservations/:id", s.handler.Get)
	s.router.PUT("/restaurants/:restaurantId/reservations/:id", s.handler.Update)
	s.router.DELETE("/restaurants/:restaurantId/reservations/:id", s.handler.Delete)
	s.router.POST("/reservations", s.handler.Create)
	s.router.GET("/reservations/:id", s.handler.Get)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/restaurants/2112/reservations"
	b := builder.NewReservationBuilder()
	reqBody := b.BuildRequestDTO()

	bound := []testCaseReservation{
		{name: "quantity boundary OK (1)", mutate: testutil.Field("quantity", 1), expectCode: http.StatusCreated},
		{name: "quantity boundary invalid (0)", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
		{name: "quantity boundary invalid (-1)", mutate: testutil.Field("quantity", -1), expectCode: http.StatusBadRequest},
		{name: "name length OK (100 chars)", mutate: testutil.Field("name", strings.Repeat("a", 100)), expectCode: http.StatusCreated},
		{name: "name length invalid (101 chars)", mutate: testutil.Field("name", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
		{name: "at without offset is read in the restaurant zone", mutate: testutil.Field("at", b.At.Format("2006-01-02 15:04")), expectCode: http.StatusCreated},
		{name: "at invalid", mutate: testutil.Field("at", "tomorrow evening"), expectCode: http.StatusBadRequest},
		{name: "email invalid", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "id invalid", mutate: testutil.Field("id", "42"), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseReservation{
		{name: "missing field: id (generated)", mutate: testutil.Field("id", nil), expectCode: http.StatusCreated},
		{name: "missing field: name (optional)", mutate: testutil.Field("name", nil), expectCode: http.StatusCreated},
		{name: "missing field: at (required)", mutate: testutil.Field("at", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: quantity (required)", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
	}

	empty := []testCaseReservation{
		{name: "empty email", mutate: testutil.Field("email", ""), expectCode: http.StatusBadRequest},
		{name: "empty at", mutate: testutil.Field("at", ""), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseReservation{bound, missing, empty}

	s.Run("success: returns 201 Created with a Location header", func() {
		s.mockCommands.EXPECT().TryCreate(gomock.Any(), 2112, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, r reservation.Reservation) error {
				s.Equal(b.ID, r.ID())
				s.Equal(b.Quantity, r.Quantity())
				s.True(r.At().Equal(b.At))
				return nil
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(b.ID.String(), body.ID)
		s.Equal(b.Email, body.Email)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/restaurants/2112/reservations/" + b.ID.String()})
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().TryCreate(gomock.Any(), 2112, gomock.Any()).Return(nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					s.Equal(tc.expectCode, rec.Code, rec.Body.String())
				})
			}
		}
	})

	s.Run("success: legacy route books the grandfathered restaurant", func() {
		s.mockCommands.EXPECT().TryCreate(gomock.Any(), 1, gomock.Any()).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/reservations", reqBody, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/reservations/" + b.ID.String()})
	})

	s.Run("error: use case failures map onto status codes", func() {
		cases := []struct {
			name    string
			err     error
			code    int
			message string
		}{
			{"no capacity", errs.ErrNoCapacity, http.StatusConflict, "No tables available"},
			{"duplicate", errs.Mark(errors.New("23505"), errs.ErrDuplicateReservation), http.StatusConflict, "already exists"},
			{"contention", errs.Mark(errors.New("40P01"), errs.ErrStoreContention), http.StatusServiceUnavailable, "retry"},
			{"unknown restaurant", errs.Mark(errors.New("no rows"), errs.ErrRestaurantNotFound), http.StatusNotFound, "Restaurant not found"},
			{"store failure", errs.Mark(errors.New("boom"), errs.ErrDatabaseOperationFailed), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().TryCreate(gomock.Any(), 2112, gomock.Any()).Return(tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.code, tc.message)
			})
		}
	})

	s.Run("error: 404 Not Found on a non-numeric restaurant id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/restaurants/nono/reservations", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Restaurant not found")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	b := builder.NewReservationBuilder()

	s.Run("success: returns 200 OK", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), 2112, b.ID).Return(b.BuildView(2112), nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/2112/reservations/"+b.ID.String(), nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID.String(), body.ID)
		s.Equal(b.At.Format(time.RFC3339), body.At)
		s.Equal(b.Quantity, body.Quantity)
	})

	s.Run("success: legacy route reads the grandfathered restaurant", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), 1, b.ID).Return(b.BuildView(1), nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/"+b.ID.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), 2112, b.ID).
			Return(nil, errs.Mark(errors.New("no rows"), errs.ErrReservationNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/2112/reservations/"+b.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 400 Bad Request on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/2112/reservations/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestUpdate() {
	b := builder.NewReservationBuilder().WithQuantity(5)
	pathID := uuid.New()
	url := "/restaurants/2112/reservations/" + pathID.String()

	s.Run("success: the path id wins over the body id", func() {
		s.mockCommands.EXPECT().TryUpdate(gomock.Any(), 2112, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int, r reservation.Reservation) error {
				s.Equal(pathID, r.ID())
				s.Equal(5, r.Quantity())
				return nil
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO(), "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(pathID.String(), body.ID)
	})

	s.Run("error: 409 Conflict when the new version does not fit", func() {
		s.mockCommands.EXPECT().TryUpdate(gomock.Any(), 2112, gomock.Any()).Return(errs.ErrNoCapacity).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "No tables available")
	})

	s.Run("error: 404 Not Found for an unknown reservation", func() {
		s.mockCommands.EXPECT().TryUpdate(gomock.Any(), 2112, gomock.Any()).
			Return(errs.Mark(errors.New("no rows"), errs.ErrReservationNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, b.BuildRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 400 Bad Request on an invalid body", func() {
		body := testutil.DtoMap(s.T(), b.BuildRequestDTO(), testutil.Field("quantity", 0))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), 2112, id).Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/restaurants/2112/reservations/"+id.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for an unknown restaurant", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), 9, id).
			Return(errs.Mark(errors.New("no rows"), errs.ErrRestaurantNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/restaurants/9/reservations/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Restaurant not found")
	})
}
