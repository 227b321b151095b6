package api

import (
	"net/http"

	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	q queries.RestaurantQueries
}

func NewRestaurantHandler(q queries.RestaurantQueries) *RestaurantHandler {
	return &RestaurantHandler{q: q}
}

// @Summary List restaurants
// @Tags restaurants
// @Produce json
// @Success 200 {array} resdto.RestaurantResponse
// @Failure 500 {object} httperr.Response
// @Router /restaurants [get]
func (h *RestaurantHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRestaurantViews(views))
}

// @Summary Get restaurant
// @Description Name, opening hours and tables of a restaurant.
// @Tags restaurants
// @Produce json
// @Param restaurantId path int true "Restaurant ID"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{restaurantId} [get]
func (h *RestaurantHandler) Get(c *gin.Context) {
	// Get has no legacy route, so there is no grandfathered fallback.
	id, ok := restaurantID(c, 0)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRestaurantView(view))
}
