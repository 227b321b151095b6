package api

import (
	"fmt"
	"net/http"
	"time"

	reqdto "restaurant-booking/internal/handler/dto/request"
	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/handler/httperr"
	"restaurant-booking/internal/pkg/config"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds          commands.ReservationCommands
	q             queries.ReservationQueries
	loc           *time.Location
	grandfatherID int
}

func NewReservationHandler(
	cmds commands.ReservationCommands,
	q queries.ReservationQueries,
	loc *time.Location,
	rc config.RestaurantConfig,
) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, loc: loc, grandfatherID: rc.GrandfatherID}
}

// @Summary Create reservation
// @Description Book a table. Rejected with 409 when no table fits the party at that time.
// @Tags reservations
// @Accept json
// @Produce json
// @Param restaurantId path int true "Restaurant ID"
// @Param request body reqdto.ReservationRequest true "Reservation"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /restaurants/{restaurantId}/reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	rid, ok := restaurantID(c, h.grandfatherID)
	if !ok {
		return
	}
	var req reqdto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	id, err := req.ParseID()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	r, err := req.ToDomain(id, h.loc)
	if err != nil {
		abortWithUseCaseError(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}

	if err := h.cmds.TryCreate(c.Request.Context(), rid, r); err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	view := queries.ToReservationView(rid, r)
	c.Header("Location", h.location(c, rid, r.ID()))
	c.JSON(http.StatusCreated, resdto.FromReservationView(&view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param restaurantId path int true "Restaurant ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{restaurantId}/reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	rid, ok := restaurantID(c, h.grandfatherID)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), rid, id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Replace a reservation. The old version does not count against capacity.
// @Tags reservations
// @Accept json
// @Produce json
// @Param restaurantId path int true "Restaurant ID"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReservationRequest true "Reservation"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /restaurants/{restaurantId}/reservations/{id} [put]
func (h *ReservationHandler) Update(c *gin.Context) {
	rid, ok := restaurantID(c, h.grandfatherID)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.ReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	// The path id wins over any id in the body.
	r, err := req.ToDomain(id, h.loc)
	if err != nil {
		abortWithUseCaseError(c, errs.Mark(err, errs.ErrDomainValidation))
		return
	}

	if err := h.cmds.TryUpdate(c.Request.Context(), rid, r); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	view := queries.ToReservationView(rid, r)
	c.JSON(http.StatusOK, resdto.FromReservationView(&view))
}

// @Summary Delete reservation
// @Description Idempotent: deleting an unknown reservation also answers 204.
// @Tags reservations
// @Param restaurantId path int true "Restaurant ID"
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{restaurantId}/reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	rid, ok := restaurantID(c, h.grandfatherID)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), rid, id); err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) location(c *gin.Context, rid int, id uuid.UUID) string {
	if c.Param("restaurantId") == "" {
		return "/reservations/" + id.String()
	}
	return fmt.Sprintf("/restaurants/%d/reservations/%s", rid, id)
}
