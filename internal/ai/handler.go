package ai

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
)

const maxUploadBytes = 20 << 20

type Handler struct {
	gateway *Gateway
}

func NewHandler(gateway *Gateway) *Handler {
	return &Handler{gateway: gateway}
}

func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("ai handler error: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// --------------------------------------------------
// POST /ai/parse-ingredients
// --------------------------------------------------
func (h *Handler) ParseIngredients(c *gin.Context) {
	var req struct {
		Ingredients *string `json:"ingredients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Ingredients == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ingredients field is required"})
		return
	}

	profile, err := h.gateway.ParseIngredients(c.Request.Context(), *req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// --------------------------------------------------
// POST /ai/ingest-menu
// --------------------------------------------------
func (h *Handler) IngestMenu(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	items, err := h.gateway.ExtractMenuItems(
		c.Request.Context(),
		data,
		header.Header.Get("Content-Type"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
