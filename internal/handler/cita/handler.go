package cita

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinidesk/citas-api/internal/model"
	apperrors "github.com/clinidesk/citas-api/pkg/errors"
)

// Service is what the handler needs from the cita lifecycle manager.
type Service interface {
	Create(ctx context.Context, req *model.CreateCitaRequest) (*model.Cita, error)
	FindAll(ctx context.Context) ([]*model.Cita, error)
	FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.Cita, error)
	FindByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]*model.Cita, error)
	FindOne(ctx context.Context, id uuid.UUID) (*model.CitaDetalle, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateCitaRequest) (*model.Cita, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) (*model.Cita, error)
	Remove(ctx context.Context, id uuid.UUID) (*model.Cita, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	citas := rg.Group("/citas")
	{
		citas.POST("", h.Create)
		citas.GET("", h.List)
		citas.GET("/paciente/:pacienteId", h.ListByPaciente)
		citas.GET("/:id", h.Get)
		citas.PATCH("/:id", h.Update)
		citas.PATCH("/:id/estado", h.UpdateEstado)
		citas.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	cita, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, cita)
}

// List returns all citas, or the inclusive date range when both bounds
// are present in the query string.
func (h *Handler) List(c *gin.Context) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	var (
		citas []*model.Cita
		err   error
	)
	if startDate != "" && endDate != "" {
		citas, err = h.service.FindByDateRange(c.Request.Context(), startDate, endDate)
	} else {
		citas, err = h.service.FindAll(c.Request.Context())
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, citas)
}

func (h *Handler) ListByPaciente(c *gin.Context) {
	pacienteID, err := uuid.Parse(c.Param("pacienteId"))
	if err != nil {
		c.Error(apperrors.NewValidation("pacienteId inválido"))
		return
	}

	citas, err := h.service.FindByPaciente(c.Request.Context(), pacienteID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, citas)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de cita inválido"))
		return
	}

	cita, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cita)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de cita inválido"))
		return
	}

	var req model.UpdateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	cita, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cita)
}

func (h *Handler) UpdateEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de cita inválido"))
		return
	}

	var req model.UpdateEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	cita, err := h.service.UpdateEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cita)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de cita inválido"))
		return
	}

	cita, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cita)
}
