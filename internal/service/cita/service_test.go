package cita

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidesk/citas-api/internal/model"
	"github.com/clinidesk/citas-api/internal/repository"
	"github.com/clinidesk/citas-api/internal/service/event"
	apperrors "github.com/clinidesk/citas-api/pkg/errors"
	"github.com/clinidesk/citas-api/pkg/logger"
)

type fakeCitaRepo struct {
	citas     map[uuid.UUID]*model.Cita
	pacientes map[uuid.UUID]*model.Paciente
}

func newFakeCitaRepo(pacientes *fakePacienteRepo) *fakeCitaRepo {
	return &fakeCitaRepo{
		citas:     make(map[uuid.UUID]*model.Cita),
		pacientes: pacientes.pacientes,
	}
}

func (f *fakeCitaRepo) Create(_ context.Context, cita *model.Cita) error {
	if _, ok := f.pacientes[cita.PacienteID]; !ok {
		return repository.ErrConflict
	}
	cita.ID = uuid.New()
	cita.CreatedAt = time.Now()
	cita.UpdatedAt = cita.CreatedAt
	stored := *cita
	f.citas[cita.ID] = &stored
	return nil
}

func (f *fakeCitaRepo) Get(_ context.Context, id uuid.UUID) (*model.Cita, error) {
	cita, ok := f.citas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *cita
	return &out, nil
}

func (f *fakeCitaRepo) GetConPaciente(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	cita, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p, ok := f.pacientes[cita.PacienteID]; ok {
		cita.Paciente = &model.PacienteResumen{
			ID:        p.ID,
			Nombres:   p.Nombres,
			Apellidos: p.Apellidos,
			Documento: &p.Documento,
		}
	}
	return cita, nil
}

func (f *fakeCitaRepo) GetConPacienteMin(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	cita, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p, ok := f.pacientes[cita.PacienteID]; ok {
		cita.Paciente = &model.PacienteResumen{
			ID:        p.ID,
			Nombres:   p.Nombres,
			Apellidos: p.Apellidos,
		}
	}
	return cita, nil
}

func (f *fakeCitaRepo) List(_ context.Context) ([]*model.Cita, error) {
	var out []*model.Cita
	for _, cita := range f.citas {
		c := *cita
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeCitaRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]*model.Cita, error) {
	var out []*model.Cita
	for _, cita := range f.citas {
		if !cita.Fecha.Before(start) && !cita.Fecha.After(end) {
			c := *cita
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeCitaRepo) ListByPaciente(_ context.Context, pacienteID uuid.UUID) ([]*model.Cita, error) {
	var out []*model.Cita
	for _, cita := range f.citas {
		if cita.PacienteID == pacienteID {
			c := *cita
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeCitaRepo) ListUpcoming(_ context.Context, start, end time.Time, estados []string, limit int) ([]*model.Cita, error) {
	var out []*model.Cita
	for _, cita := range f.citas {
		if cita.Fecha.Before(start) || cita.Fecha.After(end) {
			continue
		}
		for _, estado := range estados {
			if cita.Estado == estado {
				c := *cita
				out = append(out, &c)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCitaRepo) Update(_ context.Context, cita *model.Cita) error {
	if _, ok := f.citas[cita.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := f.pacientes[cita.PacienteID]; !ok {
		return repository.ErrConflict
	}
	cita.UpdatedAt = time.Now()
	stored := *cita
	f.citas[cita.ID] = &stored
	return nil
}

func (f *fakeCitaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	cita, ok := f.citas[id]
	if !ok {
		return repository.ErrNotFound
	}
	cita.Estado = estado
	cita.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCitaRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.citas[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.citas, id)
	return nil
}

func (f *fakeCitaRepo) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	citas, _ := f.ListByDateRange(ctx, start, end)
	return len(citas), nil
}

func (f *fakeCitaRepo) CountByEstadoInRange(ctx context.Context, start, end time.Time) ([]model.EstadoCount, error) {
	counts := make(map[string]int)
	citas, _ := f.ListByDateRange(ctx, start, end)
	for _, cita := range citas {
		counts[cita.Estado]++
	}
	var out []model.EstadoCount
	for estado, n := range counts {
		out = append(out, model.EstadoCount{Estado: estado, Cantidad: n})
	}
	return out, nil
}

type fakePacienteRepo struct {
	pacientes map[uuid.UUID]*model.Paciente
}

func newFakePacienteRepo() *fakePacienteRepo {
	return &fakePacienteRepo{pacientes: make(map[uuid.UUID]*model.Paciente)}
}

func (f *fakePacienteRepo) add(nombres, apellidos string) *model.Paciente {
	p := &model.Paciente{
		ID:            uuid.New(),
		Nombres:       nombres,
		Apellidos:     apellidos,
		TipoDocumento: "DNI",
		Documento:     uuid.New().String()[:8],
		Estado:        model.PacienteEstadoActivo,
	}
	f.pacientes[p.ID] = p
	return p
}

func (f *fakePacienteRepo) Create(_ context.Context, paciente *model.Paciente) error {
	paciente.ID = uuid.New()
	f.pacientes[paciente.ID] = paciente
	return nil
}

func (f *fakePacienteRepo) Get(_ context.Context, id uuid.UUID) (*model.Paciente, error) {
	p, ok := f.pacientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (f *fakePacienteRepo) GetByDocumento(_ context.Context, documento string) (*model.Paciente, error) {
	for _, p := range f.pacientes {
		if p.Documento == documento {
			out := *p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePacienteRepo) List(_ context.Context) ([]*model.Paciente, error) {
	var out []*model.Paciente
	for _, p := range f.pacientes {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakePacienteRepo) Update(_ context.Context, paciente *model.Paciente) error {
	if _, ok := f.pacientes[paciente.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *paciente
	f.pacientes[paciente.ID] = &stored
	return nil
}

func (f *fakePacienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.pacientes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.pacientes, id)
	return nil
}

func (f *fakePacienteRepo) Count(_ context.Context) (int, error) {
	return len(f.pacientes), nil
}

func (f *fakePacienteRepo) CountByEstado(_ context.Context, estado string) (int, error) {
	n := 0
	for _, p := range f.pacientes {
		if p.Estado == estado {
			n++
		}
	}
	return n, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func (f *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeOutboxRepo) eventTypes() []string {
	var out []string
	for _, e := range f.events {
		out = append(out, e.EventType)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *fakeCitaRepo, *fakePacienteRepo, *fakeOutboxRepo) {
	t.Helper()
	pacienteRepo := newFakePacienteRepo()
	citaRepo := newFakeCitaRepo(pacienteRepo)
	outbox := &fakeOutboxRepo{}
	events := event.NewService(outbox, logger.New(&logger.Config{Output: io.Discard}))
	return NewService(citaRepo, pacienteRepo, events), citaRepo, pacienteRepo, outbox
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, pacienteRepo, outbox := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	cita, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
	})
	require.NoError(t, err)

	assert.Equal(t, model.CitaDuracionDefault, cita.Duracion)
	assert.Equal(t, model.CitaEstadoPendiente, cita.Estado)
	assert.NotEqual(t, uuid.Nil, cita.ID)
	require.NotNil(t, cita.Paciente)
	assert.Equal(t, "Ana", cita.Paciente.Nombres)
	assert.Equal(t, []string{model.EventCitaCreada}, outbox.eventTypes())
}

func TestCreateRejectsInvalidFecha(t *testing.T) {
	svc, _, pacienteRepo, _ := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	_, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "mañana",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateRejectsShortDuracion(t *testing.T) {
	svc, _, pacienteRepo, _ := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	_, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
		Duracion:   intPtr(10),
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateUnknownPacienteIsConflict(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: uuid.New(),
		Fecha:      "2026-09-01T10:00:00",
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestCreateKeepsCustomEstado(t *testing.T) {
	svc, _, pacienteRepo, _ := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	cita, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
		Estado:     strPtr("reprogramada"),
	})
	require.NoError(t, err)
	assert.Equal(t, "reprogramada", cita.Estado)
}

func TestFindAllReturnsEmptySlice(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	citas, err := svc.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, citas)
	assert.Empty(t, citas)
}

func TestFindByDateRange(t *testing.T) {
	svc, _, pacienteRepo, _ := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	for _, fecha := range []string{"2026-09-01T10:00:00", "2026-09-15T10:00:00", "2026-10-01T10:00:00"} {
		_, err := svc.Create(context.Background(), &model.CreateCitaRequest{PacienteID: p.ID, Fecha: fecha})
		require.NoError(t, err)
	}

	citas, err := svc.FindByDateRange(context.Background(), "2026-09-01", "2026-09-30")
	require.NoError(t, err)
	assert.Len(t, citas, 2)

	_, err = svc.FindByDateRange(context.Background(), "no-fecha", "2026-09-30")
	assert.True(t, apperrors.IsValidation(err))
}

func TestFindOneNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.FindOne(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindOneIncludesPaciente(t *testing.T) {
	svc, _, pacienteRepo, _ := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	created, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
	})
	require.NoError(t, err)

	detalle, err := svc.FindOne(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, detalle.Paciente)
	assert.Equal(t, p.ID, detalle.Paciente.ID)
	assert.Equal(t, "García", detalle.Paciente.Apellidos)
}

func TestUpdateOverwritesProvidedFields(t *testing.T) {
	svc, _, pacienteRepo, outbox := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	created, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
		Motivo:     strPtr("control"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, &model.UpdateCitaRequest{
		Fecha:    strPtr("2026-09-02T11:00:00"),
		Duracion: intPtr(45),
	})
	require.NoError(t, err)

	assert.Equal(t, 45, updated.Duracion)
	assert.Equal(t, 2, updated.Fecha.Day())
	require.NotNil(t, updated.Motivo)
	assert.Equal(t, "control", *updated.Motivo)
	assert.Contains(t, outbox.eventTypes(), model.EventCitaActualizada)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), &model.UpdateCitaRequest{Duracion: intPtr(45)})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateRejectsShortDuracion(t *testing.T) {
	svc, _, pacienteRepo, _ := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	created, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &model.UpdateCitaRequest{Duracion: intPtr(5)})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateEstado(t *testing.T) {
	svc, _, pacienteRepo, outbox := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	created, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEstado(context.Background(), created.ID, "no_asistio")
	require.NoError(t, err)
	assert.Equal(t, "no_asistio", updated.Estado)
	assert.Contains(t, outbox.eventTypes(), model.EventCitaEstadoCambiado)

	_, err = svc.UpdateEstado(context.Background(), created.ID, "")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdateEstado(context.Background(), uuid.New(), model.CitaEstadoCompletada)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRemoveReturnsSnapshot(t *testing.T) {
	svc, _, pacienteRepo, outbox := newTestService(t)
	p := pacienteRepo.add("Ana", "García")

	created, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		PacienteID: p.ID,
		Fecha:      "2026-09-01T10:00:00",
	})
	require.NoError(t, err)

	removed, err := svc.Remove(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)
	assert.Contains(t, outbox.eventTypes(), model.EventCitaEliminada)

	_, err = svc.Remove(context.Background(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
