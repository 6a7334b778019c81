package handler

import (
	"io"
	"net/http"

	"visiontrain/internal/services"
	"visiontrain/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// TrainingHandler exposes the proxy endpoints toward the external AI
// training/prediction service.
type TrainingHandler struct {
	service *services.TrainingService
}

// NewTrainingHandler creates a training proxy handler.
func NewTrainingHandler(service *services.TrainingService) *TrainingHandler {
	return &TrainingHandler{service: service}
}

// GetConfig handles GET /train/config.
func (h *TrainingHandler) GetConfig(c *gin.Context) {
	body, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	relayJSON(c, body)
}

// UpdateConfig handles POST /train/config.
func (h *TrainingHandler) UpdateConfig(c *gin.Context) {
	var req httpdto.TrainingParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid request body"))
		return
	}

	body, err := h.service.UpdateConfig(c.Request.Context(), services.TrainingParams{
		Model:        req.Model,
		Classes:      req.Classes,
		Epochs:       req.Epochs,
		BatchSize:    req.BatchSize,
		LR:           req.LR,
		Augmentation: req.Augmentation,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	relayJSON(c, body)
}

// StartTraining handles POST /train/start.
func (h *TrainingHandler) StartTraining(c *gin.Context) {
	body, err := h.service.StartTraining(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	relayJSON(c, body)
}

// Predict handles POST /predict. The uploaded file is buffered in memory and
// re-encoded as a multipart form before forwarding.
func (h *TrainingHandler) Predict(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Missing file upload"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Could not read file upload"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Could not read file upload"))
		return
	}

	body, err := h.service.Predict(c.Request.Context(), services.PredictInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	relayJSON(c, body)
}

// relayJSON returns the upstream body verbatim.
func relayJSON(c *gin.Context, body []byte) {
	c.Data(http.StatusOK, "application/json", body)
}
