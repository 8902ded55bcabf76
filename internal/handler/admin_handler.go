package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/response"
)

// AdminPetHandler handles admin HTTP requests for inventory reporting.
type AdminPetHandler struct {
	service *application.PetService
}

// NewAdminPetHandler creates a new AdminPetHandler.
func NewAdminPetHandler(service *application.PetService) *AdminPetHandler {
	return &AdminPetHandler{service: service}
}

// RegisterRoutes registers admin routes behind the session middleware.
func (h *AdminPetHandler) RegisterRoutes(r *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	admin := r.Group("/api/admin")
	admin.Use(sessionMW)
	{
		admin.GET("/stats/pets", h.PetStats)
	}
}

// PetStats handles GET /api/admin/stats/pets.
func (h *AdminPetHandler) PetStats(c *gin.Context) {
	stats, err := h.service.PetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, stats)
}
