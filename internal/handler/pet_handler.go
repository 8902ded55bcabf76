package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/api"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/application"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/metrics"
	"github.com/Kilat-Pet-Delivery/service-pet-inventory/internal/response"
)

// PetHandler handles HTTP requests for pet record operations.
type PetHandler struct {
	service *application.PetService
	metrics *metrics.Metrics
}

// NewPetHandler creates a new PetHandler. m may be nil.
func NewPetHandler(service *application.PetService, m *metrics.Metrics) *PetHandler {
	return &PetHandler{service: service, metrics: m}
}

// RegisterRoutes registers all pet record routes. Reads are open; mutations
// require the session middleware.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	pets := r.Group("/api/pets")
	{
		pets.GET("", h.ListPets)
		pets.GET("/default-images", h.DefaultImages)
	}

	mutating := r.Group("/api/pets")
	mutating.Use(sessionMW)
	{
		mutating.POST("", h.CreatePet)
		mutating.PUT("/:id", h.UpdatePet)
		mutating.DELETE("/:id", h.DeletePet)
	}
}

// ListPets handles GET /api/pets.
func (h *PetHandler) ListPets(c *gin.Context) {
	result, err := h.service.ListPets(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, result)
}

// DefaultImages handles GET /api/pets/default-images.
func (h *PetHandler) DefaultImages(c *gin.Context) {
	response.JSON(c, api.DefaultImagesResponse{DefaultImages: h.service.DefaultImages()})
}

// CreatePet handles POST /api/pets.
func (h *PetHandler) CreatePet(c *gin.Context) {
	var req api.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.observe("create", err)
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePet(c.Request.Context(), req)
	h.observe("create", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Pet added successfully", result)
}

// UpdatePet handles PUT /api/pets/:id.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	var req api.RecordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.observe("update", err)
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePet(c.Request.Context(), petID, req)
	h.observe("update", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Pet updated successfully", result)
}

// DeletePet handles DELETE /api/pets/:id.
func (h *PetHandler) DeletePet(c *gin.Context) {
	petID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid pet ID")
		return
	}

	err = h.service.DeletePet(c.Request.Context(), petID)
	h.observe("delete", err)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Pet deleted successfully", nil)
}

func (h *PetHandler) observe(op string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveMutation(op, err)
	}
}
