package paciente

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

type Service struct {
	repo   repository.PacienteRepository
	events *event.Service
}

func NewService(repo repository.PacienteRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func notFoundPaciente(id uuid.UUID) *apperrors.AppError {
	return apperrors.NewNotFound(fmt.Sprintf("Paciente con ID %s no encontrado", id))
}

func (s *Service) Create(ctx context.Context, req *model.CreatePacienteRequest) (*model.Paciente, error) {
	existing, err := s.repo.GetByDocumento(ctx, req.Documento)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check documento: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("Ya existe un paciente con ese número de documento")
	}

	paciente := &model.Paciente{
		Nombres:       req.Nombres,
		Apellidos:     req.Apellidos,
		TipoDocumento: req.TipoDocumento,
		Documento:     req.Documento,
		Email:         req.Email,
		Telefono:      req.Telefono,
		Sexo:          req.Sexo,
		Direccion:     req.Direccion,
		Notas:         req.Notas,
		Estado:        model.PacienteEstadoActivo,
		Etiquetas:     req.Etiquetas,
	}
	if req.Estado != nil && *req.Estado != "" {
		paciente.Estado = *req.Estado
	}
	if req.Nacimiento != nil && *req.Nacimiento != "" {
		t, err := model.ParseFecha(*req.Nacimiento)
		if err != nil {
			return nil, apperrors.NewValidation(err.Error())
		}
		paciente.Nacimiento = &t
	}

	if err := s.repo.Create(ctx, paciente); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("Ya existe un paciente con ese número de documento")
		}
		return nil, fmt.Errorf("failed to create paciente: %w", err)
	}

	s.events.Record(ctx, model.EventPacienteCreado, paciente)
	return paciente, nil
}

func (s *Service) FindAll(ctx context.Context) ([]*model.Paciente, error) {
	pacientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pacientes: %w", err)
	}
	if pacientes == nil {
		pacientes = []*model.Paciente{}
	}
	return pacientes, nil
}

func (s *Service) FindOne(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	paciente, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundPaciente(id)
		}
		return nil, fmt.Errorf("failed to get paciente: %w", err)
	}
	return paciente, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePacienteRequest) (*model.Paciente, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundPaciente(id)
		}
		return nil, fmt.Errorf("failed to get paciente: %w", err)
	}

	if req.Documento != nil && *req.Documento != existing.Documento {
		other, err := s.repo.GetByDocumento(ctx, *req.Documento)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check documento: %w", err)
		}
		if other != nil && other.ID != id {
			return nil, apperrors.NewConflict("Ya existe otro paciente con ese número de documento")
		}
		existing.Documento = *req.Documento
	}

	if req.Nombres != nil {
		existing.Nombres = *req.Nombres
	}
	if req.Apellidos != nil {
		existing.Apellidos = *req.Apellidos
	}
	if req.TipoDocumento != nil {
		existing.TipoDocumento = *req.TipoDocumento
	}
	if req.Email != nil {
		existing.Email = req.Email
	}
	if req.Telefono != nil {
		existing.Telefono = req.Telefono
	}
	if req.Nacimiento != nil && *req.Nacimiento != "" {
		t, err := model.ParseFecha(*req.Nacimiento)
		if err != nil {
			return nil, apperrors.NewValidation(err.Error())
		}
		existing.Nacimiento = &t
	}
	if req.Sexo != nil {
		existing.Sexo = req.Sexo
	}
	if req.Direccion != nil {
		existing.Direccion = req.Direccion
	}
	if req.Notas != nil {
		existing.Notas = req.Notas
	}
	if req.Estado != nil {
		existing.Estado = *req.Estado
	}
	if req.Etiquetas != nil {
		existing.Etiquetas = req.Etiquetas
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundPaciente(id)
		}
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("Ya existe otro paciente con ese número de documento")
		}
		return nil, fmt.Errorf("failed to update paciente: %w", err)
	}

	s.events.Record(ctx, model.EventPacienteActualizado, existing)
	return existing, nil
}

func (s *Service) Remove(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	snapshot, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundPaciente(id)
		}
		return nil, fmt.Errorf("failed to get paciente: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundPaciente(id)
		}
		return nil, fmt.Errorf("failed to delete paciente: %w", err)
	}

	s.events.Record(ctx, model.EventPacienteEliminado, snapshot)
	return snapshot, nil
}
