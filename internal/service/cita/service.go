package cita

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinidesk/citas-api/internal/model"
	"github.com/clinidesk/citas-api/internal/repository"
	"github.com/clinidesk/citas-api/internal/service/event"
	apperrors "github.com/clinidesk/citas-api/pkg/errors"
)

// Service owns the cita lifecycle: validation, range queries and status
// changes. Existence-check-then-mutate is two sequential operations by
// design; a precise not-found beats saving a round trip here, and cita
// mutation is not contended.
type Service struct {
	repo         repository.CitaRepository
	pacienteRepo repository.PacienteRepository
	events       *event.Service
}

func NewService(repo repository.CitaRepository, pacienteRepo repository.PacienteRepository, events *event.Service) *Service {
	return &Service{repo: repo, pacienteRepo: pacienteRepo, events: events}
}

func notFoundCita(id uuid.UUID) *apperrors.AppError {
	return apperrors.NewNotFound(fmt.Sprintf("Cita con ID %s no encontrada", id))
}

func validateDuracion(duracion int) error {
	if duracion < model.CitaDuracionMinima {
		return apperrors.NewValidation(fmt.Sprintf("duracion debe ser al menos %d minutos", model.CitaDuracionMinima))
	}
	return nil
}

// Create validates and persists a new cita. The referenced paciente is
// not pre-verified; the foreign key rejects a dangling pacienteId and
// the violation surfaces as a conflict.
func (s *Service) Create(ctx context.Context, req *model.CreateCitaRequest) (*model.Cita, error) {
	fecha, err := model.ParseFecha(req.Fecha)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}

	duracion := model.CitaDuracionDefault
	if req.Duracion != nil {
		duracion = *req.Duracion
	}
	if err := validateDuracion(duracion); err != nil {
		return nil, err
	}

	estado := model.CitaEstadoPendiente
	if req.Estado != nil && *req.Estado != "" {
		estado = *req.Estado
	}

	cita := &model.Cita{
		PacienteID: req.PacienteID,
		Fecha:      fecha,
		Duracion:   duracion,
		Motivo:     req.Motivo,
		Estado:     estado,
		Notas:      req.Notas,
	}

	if err := s.repo.Create(ctx, cita); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict(fmt.Sprintf("Paciente con ID %s no existe", req.PacienteID))
		}
		return nil, fmt.Errorf("failed to create cita: %w", err)
	}

	created, err := s.repo.GetConPaciente(ctx, cita.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created cita: %w", err)
	}

	s.events.Record(ctx, model.EventCitaCreada, created)
	return created, nil
}

// FindAll returns every cita, newest first, with the paciente projection.
func (s *Service) FindAll(ctx context.Context) ([]*model.Cita, error) {
	citas, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list citas: %w", err)
	}
	if citas == nil {
		citas = []*model.Cita{}
	}
	return citas, nil
}

// FindByDateRange returns citas with start <= fecha <= end, ascending.
func (s *Service) FindByDateRange(ctx context.Context, startDate, endDate string) ([]*model.Cita, error) {
	start, err := model.ParseFecha(startDate)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}
	end, err := model.ParseFecha(endDate)
	if err != nil {
		return nil, apperrors.NewValidation(err.Error())
	}

	citas, err := s.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list citas by date range: %w", err)
	}
	if citas == nil {
		citas = []*model.Cita{}
	}
	return citas, nil
}

func (s *Service) FindByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]*model.Cita, error) {
	citas, err := s.repo.ListByPaciente(ctx, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list citas by paciente: %w", err)
	}
	if citas == nil {
		citas = []*model.Cita{}
	}
	return citas, nil
}

// FindOne returns the cita joined with the full paciente row.
func (s *Service) FindOne(ctx context.Context, id uuid.UUID) (*model.CitaDetalle, error) {
	cita, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		return nil, fmt.Errorf("failed to get cita: %w", err)
	}

	paciente, err := s.pacienteRepo.Get(ctx, cita.PacienteID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get paciente for cita: %w", err)
	}

	return &model.CitaDetalle{Cita: *cita, Paciente: paciente}, nil
}

// Update overwrites any provided field. Fecha and duracion are
// re-validated when present; everything else is taken as-is.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateCitaRequest) (*model.Cita, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		return nil, fmt.Errorf("failed to get cita: %w", err)
	}

	if req.PacienteID != nil {
		existing.PacienteID = *req.PacienteID
	}
	if req.Fecha != nil {
		fecha, err := model.ParseFecha(*req.Fecha)
		if err != nil {
			return nil, apperrors.NewValidation(err.Error())
		}
		existing.Fecha = fecha
	}
	if req.Duracion != nil {
		if err := validateDuracion(*req.Duracion); err != nil {
			return nil, err
		}
		existing.Duracion = *req.Duracion
	}
	if req.Motivo != nil {
		existing.Motivo = req.Motivo
	}
	if req.Estado != nil {
		existing.Estado = *req.Estado
	}
	if req.Notas != nil {
		existing.Notas = req.Notas
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict(fmt.Sprintf("Paciente con ID %s no existe", existing.PacienteID))
		}
		return nil, fmt.Errorf("failed to update cita: %w", err)
	}

	updated, err := s.repo.GetConPaciente(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated cita: %w", err)
	}

	s.events.Record(ctx, model.EventCitaActualizada, updated)
	return updated, nil
}

// UpdateEstado sets estado unconditionally. No transition table exists:
// any estado may follow any other, matching the permissive lifecycle.
func (s *Service) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) (*model.Cita, error) {
	if estado == "" {
		return nil, apperrors.NewValidation("estado es requerido")
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		return nil, fmt.Errorf("failed to get cita: %w", err)
	}

	if err := s.repo.UpdateEstado(ctx, id, estado); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		return nil, fmt.Errorf("failed to update cita estado: %w", err)
	}

	updated, err := s.repo.GetConPacienteMin(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated cita: %w", err)
	}

	s.events.Record(ctx, model.EventCitaEstadoCambiado, updated)
	return updated, nil
}

// Remove deletes the cita and returns its prior snapshot.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	snapshot, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		return nil, fmt.Errorf("failed to get cita: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundCita(id)
		}
		return nil, fmt.Errorf("failed to delete cita: %w", err)
	}

	s.events.Record(ctx, model.EventCitaEliminada, snapshot)
	return snapshot, nil
}
