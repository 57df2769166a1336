package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tripweaver/cmd/fx/balancer_fx"
	"tripweaver/cmd/fx/controllers_fx"
	"tripweaver/cmd/fx/db_fx"
	"tripweaver/cmd/fx/pipeline_fx"
	"tripweaver/cmd/fx/providers_fx"
	"tripweaver/cmd/fx/trips_fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	app := fx.New(
		db_fx.Module,
		providers_fx.Module,
		balancer_fx.Module,
		trips_fx.Module,
		pipeline_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	generateController *controllers.GenerateController,
	tripsController *controllers.TripsController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, generateController, tripsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	generateController *controllers.GenerateController,
	tripsController *controllers.TripsController) {

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	tripsGroup := r.Group("/trips")
	tripsGroup.POST("/generate", generateController.GenerateItinerary)
	tripsGroup.GET("", tripsController.ListTrips)
	tripsGroup.GET("/:tripId", tripsController.GetTripById)
}
