package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"upcycle-wizard-backend/internal/elevenlabs"
	"upcycle-wizard-backend/internal/models"
)

type TTSHandler struct {
	client *elevenlabs.Client
}

func NewTTSHandler(client *elevenlabs.Client) *TTSHandler {
	return &TTSHandler{client: client}
}

// Synthesize godoc
// @Summary     Convert guide text to speech
// @Description Proxies to ElevenLabs and streams back MP3 audio.
// @Tags        text-to-speech
// @Accept      json
// @Produce     audio/mpeg
// @Security    Bearer
// @Param       request body models.TextToSpeechRequest true "Text and optional voice settings"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /text-to-speech [post]
func (h *TTSHandler) Synthesize(c *gin.Context) {
	var req models.TextToSpeechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Text parameter is required and cannot be empty",
			Code:      "MISSING_TEXT",
			Timestamp: time.Now().UTC(),
		})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Text parameter is required and cannot be empty",
			Code:      "MISSING_TEXT",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	audio, err := h.client.Synthesize(c.Request.Context(), req)
	if err != nil {
		var apiErr *elevenlabs.APIError
		if errors.As(err, &apiErr) {
			status := apiErr.StatusCode
			if status >= 500 {
				status = http.StatusBadGateway
			}
			c.JSON(status, models.ErrorResponse{
				Error:     apiErr.Message,
				Code:      apiErr.Code,
				Details:   apiErr.Body,
				Timestamp: time.Now().UTC(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Internal server error during text-to-speech conversion",
			Code:      "INTERNAL_ERROR",
			Details:   err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Length", strconv.Itoa(len(audio)))
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
