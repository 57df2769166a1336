package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

type GenerateController struct {
	generationService services.GenerationServiceInterface
	tripService       services.TripServiceInterface
}

func NewGenerateController(
	generationService services.GenerationServiceInterface,
	tripService services.TripServiceInterface,
) *GenerateController {
	return &GenerateController{
		generationService: generationService,
		tripService:       tripService,
	}
}

// GenerateItinerary godoc
// @Summary Generate a trip itinerary
// @Description Stream itinerary generation progress as server-sent events and finish with exactly one "done" or "error" frame
// @Tags Generation
// @Accept json
// @Produce text/event-stream
// @Param request body request_models.TripPreferences true "Trip preferences"
// @Success 200 {object} response_models.StreamMessage
// @Failure 400 {object} utils.APIResponse
// @Router /trips/generate [post]
func (g *GenerateController) GenerateItinerary(c *gin.Context) {
	var prefs request_models.TripPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs.Origin = utils.NormalizeCityName(prefs.Origin)
	prefs.Destination = utils.NormalizeCityName(prefs.Destination)

	// Incomplete preferences are rejected before the stream opens so the
	// client gets a plain 400 instead of an error frame.
	if missing := prefs.MissingFields(); len(missing) > 0 {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	emit := func(msg response_models.StreamMessage) {
		g.writeFrame(c, msg)
	}

	trip, err := g.generationService.GenerateItinerary(c.Request.Context(), prefs, emit)
	if err != nil {
		log.Printf("generate: run for %s -> %s failed: %v", prefs.Origin, prefs.Destination, err)
		return
	}

	// Persistence is off the hot path: the stream already carried the trip.
	go g.saveTrip(trip)
}

func (g *GenerateController) writeFrame(c *gin.Context, msg response_models.StreamMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		// A frame that cannot be encoded must still never fake success.
		log.Printf("generate: dropping unencodable frame: %v", err)
		fallback := response_models.StreamMessage{
			Status: response_models.StreamStatusError,
			Error:  response_models.SanitizeStreamError(err.Error()),
		}
		payload, err = json.Marshal(fallback)
		if err != nil {
			return
		}
	}

	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		log.Printf("generate: client went away mid-stream: %v", err)
		return
	}
	c.Writer.Flush()
}

func (g *GenerateController) saveTrip(trip *response_models.Itinerary) {
	if trip == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := g.tripService.SaveGeneratedTrip(ctx, trip); err != nil {
		log.Printf("generate: persisting trip %s failed: %v", trip.ID, err)
		return
	}
	log.Printf("generate: trip %s saved", trip.ID)
}
