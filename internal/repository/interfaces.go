package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/clinidesk/citas-api/internal/model"
)

// ErrNotFound is returned (wrapped) by implementations when a lookup or
// conditional mutation matches no row. Services translate it into the
// client-facing not-found error.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned (wrapped) when a storage-level constraint
// rejects a write: a duplicate documento, or a cita referencing a
// paciente that does not exist. Referential integrity is enforced by
// the foreign key, not re-verified before writes.
var ErrConflict = errors.New("constraint violation")

// CitaRepository is the persistence contract for citas: single-row CRUD
// plus the range, per-patient and grouped-count queries the service and
// the dashboard need. Range bounds are inclusive on both ends.
type CitaRepository interface {
	Create(ctx context.Context, cita *model.Cita) error
	Get(ctx context.Context, id uuid.UUID) (*model.Cita, error)
	GetConPaciente(ctx context.Context, id uuid.UUID) (*model.Cita, error)
	GetConPacienteMin(ctx context.Context, id uuid.UUID) (*model.Cita, error)
	List(ctx context.Context) ([]*model.Cita, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*model.Cita, error)
	ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]*model.Cita, error)
	ListUpcoming(ctx context.Context, start, end time.Time, estados []string, limit int) ([]*model.Cita, error)
	Update(ctx context.Context, cita *model.Cita) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountInRange(ctx context.Context, start, end time.Time) (int, error)
	CountByEstadoInRange(ctx context.Context, start, end time.Time) ([]model.EstadoCount, error)
}

type PacienteRepository interface {
	Create(ctx context.Context, paciente *model.Paciente) error
	Get(ctx context.Context, id uuid.UUID) (*model.Paciente, error)
	GetByDocumento(ctx context.Context, documento string) (*model.Paciente, error)
	List(ctx context.Context) ([]*model.Paciente, error)
	Update(ctx context.Context, paciente *model.Paciente) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	CountByEstado(ctx context.Context, estado string) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
