package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"rental-backend/controllers"
	"rental-backend/middleware"
	"rental-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances to the route tree.
func SetupRouter(
	bc *controllers.BookingController,
	cc *controllers.CheckoutController,
	gc *controllers.GuestController,
	ic *controllers.InventoryController,
	cache *utils.CacheRegistry,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", controllers.GetProperties)
			properties.POST("", controllers.CreateProperty)
			properties.PUT("/:id", controllers.UpdateProperty)
			properties.DELETE("/:id", controllers.DeleteProperty)
		}

		units := api.Group("/units")
		{
			units.GET("", controllers.GetUnits)
			units.GET("/:id", controllers.GetUnit)
			units.POST("", controllers.CreateUnit)
			units.PATCH("/:id", controllers.UpdateUnit)
			units.PUT("/:id", controllers.UpdateUnit)
			units.DELETE("/:id", controllers.DeleteUnit)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", gc.GetGuests)
			guests.GET("/:id", gc.GetGuestByID)
			guests.POST("", gc.CreateGuest)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", gc.DeleteGuest)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.POST("/:id/checkin", bc.CheckInBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)
		}

		inventory := api.Group("/inventory")
		{
			inventory.GET("/items", ic.GetItems)
			inventory.POST("/items", ic.CreateItem)
			inventory.PATCH("/items/:id", ic.UpdateItem)
			inventory.GET("/items/:id/movements", ic.GetMovements)
			inventory.POST("/assignments", ic.CreateAssignment)
			inventory.POST("/assignments/:id/return", ic.ReturnAssignment)
		}

		checkout := api.Group("/checkout")
		{
			checkout.GET("/bookings", cc.ListBookingsForCheckout)
			checkout.GET("/units/:unitId/assignments", cc.ListEligibleAssignments)
			checkout.POST("", cc.CompleteCheckout)
			checkout.GET("/reports", cc.ListReports)
			checkout.GET("/reports/:id", cc.GetReport)
		}

		api.GET("/cache/versions", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "success", "data": cache.Snapshot()})
		})
	}

	return r
}
