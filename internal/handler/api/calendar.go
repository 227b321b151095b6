package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-booking/internal/domain/scheduling"
	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/handler/httperr"
	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingPrincipal = errors.New("no authenticated principal")

type CalendarHandler struct {
	q             queries.ScheduleQueries
	loc           *time.Location
	grandfatherID int
}

func NewCalendarHandler(q queries.ScheduleQueries, loc *time.Location, rc config.RestaurantConfig) *CalendarHandler {
	return &CalendarHandler{q: q, loc: loc, grandfatherID: rc.GrandfatherID}
}

// @Summary Restaurant availability
// @Description Largest party that can still be seated at each 15 minute slot, per day of the year, month or day.
// @Tags calendar
// @Produce json
// @Param restaurantId path int true "Restaurant ID"
// @Param year path int true "Year"
// @Param month path int false "Month"
// @Param day path int false "Day"
// @Success 200 {object} resdto.CalendarResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{restaurantId}/calendar/{year}/{month}/{day} [get]
func (h *CalendarHandler) Get(c *gin.Context) {
	rid, ok := restaurantID(c, h.grandfatherID)
	if !ok {
		return
	}
	period, err := periodFromPath(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid period", nil)
		return
	}
	view, err := h.q.GetAvailability(c.Request.Context(), rid, period)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCalendarView(view))
}

// @Summary Maitre d' schedule
// @Description Reservations seated at each booked time of the day. Requires the MaitreD role for the restaurant.
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param restaurantId path int true "Restaurant ID"
// @Param year path int true "Year"
// @Param month path int true "Month"
// @Param day path int true "Day"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{restaurantId}/schedule/{year}/{month}/{day} [get]
func (h *CalendarHandler) Schedule(c *gin.Context) {
	rid, ok := restaurantID(c, h.grandfatherID)
	if !ok {
		return
	}
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return
	}
	if err := principal.CanAdminister(rid); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	period, err := periodFromPath(c)
	if err != nil || period.Kind() != scheduling.PeriodDay {
		if err == nil {
			err = scheduling.ErrInvalidPeriod
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}
	start, _ := period.Bounds(h.loc)
	view, err := h.q.GetSchedule(c.Request.Context(), rid, start)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromScheduleView(view))
}

// periodFromPath reads :year and the optional :month and :day.
func periodFromPath(c *gin.Context) (scheduling.Period, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return scheduling.Period{}, scheduling.ErrInvalidPeriod
	}
	rawMonth := c.Param("month")
	if rawMonth == "" {
		return scheduling.NewYearPeriod(year)
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return scheduling.Period{}, scheduling.ErrInvalidPeriod
	}
	rawDay := c.Param("day")
	if rawDay == "" {
		return scheduling.NewMonthPeriod(year, month)
	}
	day, err := strconv.Atoi(rawDay)
	if err != nil {
		return scheduling.Period{}, scheduling.ErrInvalidPeriod
	}
	return scheduling.NewDayPeriod(year, month, day)
}
