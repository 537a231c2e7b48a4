package menu

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reece333/SafeEats-TeamM/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("menu handler error: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// --------------------------------------------------
// POST /restaurants/:id/menu
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.Create(c.Request.Context(), c.Param("id"), req, c.GetString("uid"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// --------------------------------------------------
// GET /restaurants/:id/menu?dietary_category=&allergen_free=
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	filters := Filters{
		DietaryCategory: c.Query("dietary_category"),
		AllergenFree:    c.QueryArray("allergen_free"),
	}

	items, err := h.service.List(c.Request.Context(), c.Param("id"), c.GetString("uid"), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// PUT /restaurants/:id/menu/:itemId
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), c.Param("itemId"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// --------------------------------------------------
// DELETE /restaurants/:id/menu/:itemId
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	itemID := c.Param("itemId")

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Menu item %s successfully deleted", itemID),
	})
}
