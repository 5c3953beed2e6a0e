package paciente

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinidesk/citas-api/internal/model"
	apperrors "github.com/clinidesk/citas-api/pkg/errors"
)

type Service interface {
	Create(ctx context.Context, req *model.CreatePacienteRequest) (*model.Paciente, error)
	FindAll(ctx context.Context) ([]*model.Paciente, error)
	FindOne(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePacienteRequest) (*model.Paciente, error)
	Remove(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	pacientes := rg.Group("/pacientes")
	{
		pacientes.POST("", h.Create)
		pacientes.GET("", h.List)
		pacientes.GET("/:id", h.Get)
		pacientes.PATCH("/:id", h.Update)
		pacientes.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePacienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	paciente, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, paciente)
}

func (h *Handler) List(c *gin.Context) {
	pacientes, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, pacientes)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de paciente inválido"))
		return
	}

	paciente, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, paciente)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de paciente inválido"))
		return
	}

	var req model.UpdatePacienteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidation(err.Error()))
		return
	}

	paciente, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, paciente)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewValidation("ID de paciente inválido"))
		return
	}

	paciente, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, paciente)
}
