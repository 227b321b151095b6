package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"restaurant-booking/internal/domain/auth"
	"restaurant-booking/internal/handler/api"
	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation *api.ReservationHandler
	Calendar    *api.CalendarHandler
	Restaurant  *api.RestaurantHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg.Restaurant, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, rc config.RestaurantConfig, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	maitreD := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRole(auth.RoleMaitreD)}

	restaurants := engine.Group("/restaurants")
	{
		addRoutes(restaurants, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Restaurant.List},
			{Method: http.MethodGet, Path: "/:restaurantId", Handler: h.Restaurant.Get},
			{Method: http.MethodPost, Path: "/:restaurantId/reservations", Handler: h.Reservation.Create},
			{Method: http.MethodGet, Path: "/:restaurantId/reservations/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPut, Path: "/:restaurantId/reservations/:id", Handler: h.Reservation.Update},
			{Method: http.MethodDelete, Path: "/:restaurantId/reservations/:id", Handler: h.Reservation.Delete},
			{Method: http.MethodGet, Path: "/:restaurantId/calendar/:year", Handler: h.Calendar.Get},
			{Method: http.MethodGet, Path: "/:restaurantId/calendar/:year/:month", Handler: h.Calendar.Get},
			{Method: http.MethodGet, Path: "/:restaurantId/calendar/:year/:month/:day", Handler: h.Calendar.Get},
			{Method: http.MethodGet, Path: "/:restaurantId/schedule/:year/:month/:day", Handler: h.Calendar.Schedule, Mw: maitreD},
		})
	}

	// Routes from before restaurants were addressable act on the grandfathered restaurant.
	legacy := engine.Group("")
	{
		addRoutes(legacy, []route{
			{Method: http.MethodPost, Path: "/reservations", Handler: h.Reservation.Create},
			{Method: http.MethodGet, Path: "/reservations/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPut, Path: "/reservations/:id", Handler: h.Reservation.Update},
			{Method: http.MethodDelete, Path: "/reservations/:id", Handler: h.Reservation.Delete},
			{Method: http.MethodGet, Path: "/calendar/:year", Handler: redirectToGrandfather(rc.GrandfatherID)},
			{Method: http.MethodGet, Path: "/calendar/:year/:month", Handler: redirectToGrandfather(rc.GrandfatherID)},
			{Method: http.MethodGet, Path: "/calendar/:year/:month/:day", Handler: redirectToGrandfather(rc.GrandfatherID)},
			{Method: http.MethodGet, Path: "/schedule/:year/:month/:day", Handler: redirectToGrandfather(rc.GrandfatherID)},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func redirectToGrandfather(restaurantID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := fmt.Sprintf("/restaurants/%d%s", restaurantID, c.Request.URL.Path)
		if q := c.Request.URL.RawQuery; q != "" {
			target += "?" + q
		}
		c.Redirect(http.StatusMovedPermanently, target)
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
