package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelechi/skylinkbackend/auth"
	"github.com/kelechi/skylinkbackend/controllers"
	"github.com/kelechi/skylinkbackend/database"
	"github.com/kelechi/skylinkbackend/middleware"
	"github.com/kelechi/skylinkbackend/models"
	"github.com/kelechi/skylinkbackend/subscription"
	"github.com/kelechi/skylinkbackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	usersCol := database.OpenCollection("users")
	if err := utils.EnsureUserIndexes(ctx, usersCol); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	// Periodic expiry sweep so deactivation doesn't depend on someone
	// opening the subscriber list.
	sweepMinutes := utils.ParseIntDefault(os.Getenv("SWEEP_INTERVAL_MINUTES"), 60)
	subsCol := database.OpenCollection("subscribers")
	sweeper := subscription.NewSweeper(
		time.Duration(sweepMinutes)*time.Minute,
		func(ctx context.Context, now time.Time) (int64, error) {
			res, err := subsCol.UpdateMany(ctx, subscription.ExpiryFilter(now), subscription.ExpiryUpdate(now))
			if err != nil {
				return 0, err
			}
			return res.ModifiedCount, nil
		},
	)
	go sweeper.Run(ctx)

	r := gin.New()
	v := utils.NewImageValidator()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	// Public catalog for the marketing site
	r.GET("/products", controllers.GetProducts())
	r.GET("/products/:id", controllers.GetProduct())

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.RequireRoles(auth.AnyStaff()...))
	{
		admin.POST("/products", controllers.AddProduct(v))
		admin.PATCH("/products/:id", controllers.UpdateProduct(v))
		admin.DELETE("/products/:id", controllers.DeleteProduct())

		admin.POST("/subscribers", controllers.CreateSubscriber())
		admin.GET("/subscribers", controllers.GetSubscribers())
		admin.GET("/subscribers/stats", controllers.GetSubscriberStats())
		admin.GET("/subscribers/:id", controllers.GetSubscriber())
		admin.PATCH("/subscribers/:id", controllers.UpdateSubscriber())
		admin.POST("/subscribers/:id/activate", controllers.ActivateSubscription())
		admin.POST("/subscribers/:id/deactivate", controllers.DeactivateSubscription())
		admin.DELETE("/subscribers/:id", controllers.DeleteSubscriber())

		admin.POST("/me/password", controllers.ChangeMyPassword())
	}

	// User-account management is the admin-only tier
	users := admin.Group("/users")
	users.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		users.POST("", controllers.CreateUser())
		users.GET("", controllers.GetUsers())
		users.PATCH("/:id", controllers.UpdateUser())
		users.POST("/:id/password", controllers.ResetUserPassword())
		users.DELETE("/:id", controllers.DeleteUser())
	}

	// Server listens on 0.0.0.0:8080 unless PORT overrides it
	if err := r.Run(); err != nil {
		log.Fatal(err)
	}
}
