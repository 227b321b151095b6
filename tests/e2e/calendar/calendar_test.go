//go:build e2e

package calendar_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/tests/common/authtest"
	"restaurant-booking/tests/common/builder"
	"restaurant-booking/tests/common/dbtest"
	"restaurant-booking/tests/common/httptest"
	"restaurant-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CalendarSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *CalendarSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *CalendarSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestCalendarSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CalendarSuite))
}

func nextWeek() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func datePath(prefix string, restaurantID int, day time.Time) string {
	return fmt.Sprintf("/restaurants/%d/%s/%d/%d/%d", restaurantID, prefix, day.Year(), int(day.Month()), day.Day())
}

// =============================================================================
// TestCalendar
// =============================================================================

func (s *CalendarSuite) TestCalendar() {
	s.Run("Normal case: a day shows the largest party each slot can seat", func() {
		t := s.T()
		day := nextWeek()
		dbtest.InsertReservation(t, s.DB, 2112, builder.NewReservationBuilder().WithAt(day.Add(19*time.Hour)).WithQuantity(5))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, datePath("calendar", 2112, day), nil, "")
		var got resdto.CalendarResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		require.Len(t, got.Days, 1)
		require.Equal(t, day.Format(time.DateOnly), got.Days[0].Date)
		require.Len(t, got.Days[0].Entries, 13)
		for _, e := range got.Days[0].Entries {
			// The six-top is taken all evening; a four-top is the largest left.
			require.Equal(t, 4, e.MaximumPartySize, e.Time)
		}
	})

	s.Run("Normal case: a month lists every date", func() {
		t := s.T()
		day := nextWeek()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/restaurants/90125/calendar/%d/%d", day.Year(), int(day.Month())), nil, "")

		var got resdto.CalendarResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		require.Len(t, got.Days, first.AddDate(0, 1, -1).Day())
		require.Equal(t, "The Vatican Cellar", got.Name)
	})

	s.Run("Normal case: writes are visible in the next read", func() {
		t := s.T()
		day := nextWeek()
		url := datePath("calendar", 1, day)
		before := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, before.Code)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/restaurants/1/reservations",
			builder.NewReservationBuilder().WithAt(day.Add(18*time.Hour)).WithQuantity(3).BuildRequestDTO(), "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		after := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		var got resdto.CalendarResponse
		httptest.AssertSuccessResponse(t, after, http.StatusOK, &got)
		require.Equal(t, 7, got.Days[0].Entries[0].MaximumPartySize)
	})

	s.Run("Normal case: legacy calendar redirects to the grandfathered restaurant", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/calendar/2030/1", nil, "")
		require.Equal(t, http.StatusMovedPermanently, w.Code)
		require.Equal(t, "/restaurants/1/calendar/2030/1", w.Header().Get("Location"))
	})

	s.Run("Error case: 400 for an impossible date", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/restaurants/1/calendar/2030/2/30", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid period")
	})
}

// =============================================================================
// TestSchedule
// =============================================================================

func (s *CalendarSuite) TestSchedule() {
	s.Run("Normal case: the maitre d' sees who sits when", func() {
		t := s.T()
		day := nextWeek()
		early := builder.NewReservationBuilder().WithAt(day.Add(18 * time.Hour)).WithEmail("early@example.com")
		late := builder.NewReservationBuilder().WithAt(day.Add(20 * time.Hour)).WithEmail("late@example.com")
		dbtest.InsertReservation(t, s.DB, 90125, late)
		dbtest.InsertReservation(t, s.DB, 90125, early)

		// Two hour seatings: the 18:00 party has left by 20:00.
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, datePath("schedule", 90125, day), nil, s.jwt.MaitreDToken(t, 90125))
		var got resdto.ScheduleResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		var emails [][]string
		for _, e := range got.Entries {
			var seated []string
			for _, r := range e.Reservations {
				seated = append(seated, r.Email)
			}
			emails = append(emails, seated)
		}
		want := [][]string{{"early@example.com"}, {"late@example.com"}}
		if diff := cmp.Diff(want, emails); diff != "" {
			t.Errorf("schedule mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, "The Vatican Cellar", got.Name)
	})

	s.Run("Error case: 401 without a token and with an expired one", func() {
		t := s.T()
		url := datePath("schedule", 2112, nextWeek())
		httptest.AssertErrorResponse(t, httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, ""), http.StatusUnauthorized, "")
		httptest.AssertErrorResponse(t, httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.jwt.CreateExpiredToken(t, 2112)), http.StatusUnauthorized, "")
	})

	s.Run("Error case: 403 for another restaurant's maitre d'", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, datePath("schedule", 2112, nextWeek()), nil, s.jwt.MaitreDToken(t, 90125))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")
	})

	s.Run("Error case: 403 without the MaitreD role", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, datePath("schedule", 2112, nextWeek()), nil, s.jwt.GenerateToken(t, nil, 2112))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}
