package api

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant-booking/internal/domain/auth"
	"restaurant-booking/internal/handler/httperr"
	"restaurant-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errInvalidRestaurantID = errors.New("restaurant id must be an integer")

// abortWithUseCaseError maps the shared sentinels onto status codes.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, errs.ErrRestaurantNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Restaurant not found", nil)
	case errors.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, errs.ErrNoCapacity):
		httperr.AbortWithError(c, http.StatusConflict, err, "No tables available", nil)
	case errors.Is(err, errs.ErrDuplicateReservation):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already exists", nil)
	case errors.Is(err, errs.ErrStoreContention):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Reservation system busy, please retry", nil)
	case errors.Is(err, errs.ErrForbidden), errors.Is(err, auth.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// restaurantID reads :restaurantId, falling back to the grandfathered restaurant on legacy routes.
func restaurantID(c *gin.Context, grandfatherID int) (int, bool) {
	raw := c.Param("restaurantId")
	if raw == "" {
		return grandfatherID, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusNotFound, errInvalidRestaurantID, "Restaurant not found", nil)
		return 0, false
	}
	return id, true
}
