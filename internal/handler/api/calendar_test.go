//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"restaurant-booking/internal/domain/auth"
	"restaurant-booking/internal/domain/scheduling"
	"restaurant-booking/internal/handler/api"
	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/queries"
	"restaurant-booking/tests/common/builder"
	"restaurant-booking/tests/common/httptest"
	queriesmock "restaurant-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CalendarHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockScheduleQueries
	handler     *api.CalendarHandler
}

func (s *CalendarHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	s.handler = api.NewCalendarHandler(s.mockQueries, time.UTC, config.NewTestConfig().Restaurant)

	// Mock authentication: the bearer token is "maitred-<restaurantId>"
	authMiddleware := func(c *gin.Context) {
		switch c.GetHeader("Authorization") {
		case "":
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		case "Bearer maitred-2112":
			middleware.SetPrincipal(c, auth.Principal{
				UserID: uuid.New(),
				Roles:  []auth.Role{auth.RoleMaitreD},
				Access: auth.NewAccessControlList(2112),
			})
		default:
			middleware.SetPrincipal(c, auth.Principal{UserID: uuid.New()})
		}
		c.Next()
	}

	s.router.GET("/restaurants/:restaurantId/calendar/:year", s.handler.Get)
	s.router.GET("/restaurants/:restaurantId/calendar/:year/:month", s.handler.Get)
	s.router.GET("/restaurants/:restaurantId/calendar/:year/:month/:day", s.handler.Get)
	s.router.GET("/restaurants/:restaurantId/schedule/:year/:month/:day", authMiddleware, s.handler.Schedule)
}

func (s *CalendarHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCalendarHandlerSuite(t *testing.T) {
	suite.Run(t, new(CalendarHandlerTestSuite))
}

// ================================================================================
// TestGet
// ================================================================================

func (s *CalendarHandlerTestSuite) TestGet() {
	day := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	view := &queries.CalendarView{
		RestaurantID: 2112,
		Name:         "Nono",
		Period:       "2024-05-07",
		Days: []queries.DayView{{
			Date: day,
			Entries: []queries.TimeEntryView{
				{At: day.Add(18 * time.Hour), MaximumPartySize: 6},
				{At: day.Add(18*time.Hour + 15*time.Minute), MaximumPartySize: 4},
			},
		}},
	}

	s.Run("success: day calendar", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), 2112, gomock.Any()).
			DoAndReturn(func(_ any, _ int, p scheduling.Period) (*queries.CalendarView, error) {
				s.Equal("2024-05-07", p.String())
				return view, nil
			}).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/2112/calendar/2024/5/7", nil, "")

		var body resdto.CalendarResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Nono", body.Name)
		s.Require().Len(body.Days, 1)
		s.Equal("2024-05-07", body.Days[0].Date)
		s.Equal([]resdto.TimeEntryResponse{
			{Time: "18:00:00", MaximumPartySize: 6},
			{Time: "18:15:00", MaximumPartySize: 4},
		}, body.Days[0].Entries)
	})

	s.Run("success: year and month periods", func() {
		for path, key := range map[string]string{
			"/restaurants/2112/calendar/2024":   "2024",
			"/restaurants/2112/calendar/2024/2": "2024-02",
		} {
			s.mockQueries.EXPECT().GetAvailability(gomock.Any(), 2112, gomock.Any()).
				DoAndReturn(func(_ any, _ int, p scheduling.Period) (*queries.CalendarView, error) {
					s.Equal(key, p.String())
					return &queries.CalendarView{RestaurantID: 2112, Period: key}, nil
				}).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		}
	})

	s.Run("error: 400 Bad Request on an impossible date", func() {
		for _, path := range []string{
			"/restaurants/2112/calendar/2024/13",
			"/restaurants/2112/calendar/2023/2/29",
			"/restaurants/2112/calendar/twenty",
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, path, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid period")
		}
	})

	s.Run("error: 404 Not Found for an unknown restaurant", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), 404, gomock.Any()).
			Return(nil, errs.Mark(errors.New("no rows"), errs.ErrRestaurantNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/404/calendar/2024", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Restaurant not found")
	})
}

// ================================================================================
// TestSchedule
// ================================================================================

func (s *CalendarHandlerTestSuite) TestSchedule() {
	url := "/restaurants/2112/schedule/2024/5/7"
	day := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	guest := builder.NewReservationBuilder().WithAt(day.Add(19 * time.Hour))

	s.Run("success: maitre d' of the restaurant sees the schedule", func() {
		s.mockQueries.EXPECT().GetSchedule(gomock.Any(), 2112, day).Return(&queries.ScheduleView{
			RestaurantID: 2112,
			Name:         "Nono",
			Date:         day,
			Entries: []queries.ScheduleEntryView{
				{At: guest.At, Reservations: []queries.ReservationView{*guest.BuildView(2112)}},
			},
		}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "maitred-2112")

		var body resdto.ScheduleResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2024-05-07", body.Date)
		s.Require().Len(body.Entries, 1)
		s.Equal("19:00:00", body.Entries[0].Time)
		s.Require().Len(body.Entries[0].Reservations, 1)
		s.Equal(guest.Email, body.Entries[0].Reservations[0].Email)
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: 403 Forbidden for another restaurant", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/90125/schedule/2024/5/7", nil, "maitred-2112")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 403 Forbidden without the MaitreD role", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "guest")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 400 Bad Request on an impossible date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/restaurants/2112/schedule/2024/2/30", nil, "maitred-2112")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})
}
