package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinidesk/citas-api/internal/model"
)

type stubCitaRepo struct {
	citas []*model.Cita
}

func (s *stubCitaRepo) Create(context.Context, *model.Cita) error { return nil }
func (s *stubCitaRepo) Get(context.Context, uuid.UUID) (*model.Cita, error) {
	return nil, nil
}
func (s *stubCitaRepo) GetConPaciente(context.Context, uuid.UUID) (*model.Cita, error) {
	return nil, nil
}
func (s *stubCitaRepo) GetConPacienteMin(context.Context, uuid.UUID) (*model.Cita, error) {
	return nil, nil
}
func (s *stubCitaRepo) List(context.Context) ([]*model.Cita, error) { return nil, nil }
func (s *stubCitaRepo) ListByPaciente(context.Context, uuid.UUID) ([]*model.Cita, error) {
	return nil, nil
}
func (s *stubCitaRepo) Update(context.Context, *model.Cita) error { return nil }

func (s *stubCitaRepo) UpdateEstado(context.Context, uuid.UUID, string) error { return nil }

func (s *stubCitaRepo) Delete(context.Context, uuid.UUID) error { return nil }

func (s *stubCitaRepo) inRange(start, end time.Time) []*model.Cita {
	var out []*model.Cita
	for _, c := range s.citas {
		if !c.Fecha.Before(start) && !c.Fecha.After(end) {
			out = append(out, c)
		}
	}
	return out
}

func (s *stubCitaRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]*model.Cita, error) {
	return s.inRange(start, end), nil
}

func (s *stubCitaRepo) ListUpcoming(_ context.Context, start, end time.Time, estados []string, limit int) ([]*model.Cita, error) {
	var out []*model.Cita
	for _, c := range s.inRange(start, end) {
		for _, estado := range estados {
			if c.Estado == estado {
				out = append(out, c)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubCitaRepo) CountInRange(_ context.Context, start, end time.Time) (int, error) {
	return len(s.inRange(start, end)), nil
}

func (s *stubCitaRepo) CountByEstadoInRange(_ context.Context, start, end time.Time) ([]model.EstadoCount, error) {
	counts := make(map[string]int)
	for _, c := range s.inRange(start, end) {
		counts[c.Estado]++
	}
	var out []model.EstadoCount
	for estado, n := range counts {
		out = append(out, model.EstadoCount{Estado: estado, Cantidad: n})
	}
	return out, nil
}

type stubPacienteRepo struct {
	total   int
	activos int
}

func (s *stubPacienteRepo) Create(context.Context, *model.Paciente) error { return nil }
func (s *stubPacienteRepo) Get(context.Context, uuid.UUID) (*model.Paciente, error) {
	return nil, nil
}
func (s *stubPacienteRepo) GetByDocumento(context.Context, string) (*model.Paciente, error) {
	return nil, nil
}
func (s *stubPacienteRepo) List(context.Context) ([]*model.Paciente, error) { return nil, nil }
func (s *stubPacienteRepo) Update(context.Context, *model.Paciente) error   { return nil }
func (s *stubPacienteRepo) Delete(context.Context, uuid.UUID) error         { return nil }
func (s *stubPacienteRepo) Count(context.Context) (int, error)              { return s.total, nil }
func (s *stubPacienteRepo) CountByEstado(context.Context, string) (int, error) {
	return s.activos, nil
}

func TestWindowsAt(t *testing.T) {
	loc := time.UTC

	t.Run("mid month", func(t *testing.T) {
		now := time.Date(2026, 3, 15, 14, 30, 0, 0, loc)
		w := WindowsAt(now)

		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, loc), w.MonthStart)
		assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, loc), w.MonthEnd)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), w.DayStart)
		assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 0, loc), w.DayEnd)
	})

	t.Run("february leap year", func(t *testing.T) {
		w := WindowsAt(time.Date(2028, 2, 10, 8, 0, 0, 0, loc))
		assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, loc), w.MonthEnd)
	})

	t.Run("december rolls into next year", func(t *testing.T) {
		w := WindowsAt(time.Date(2026, 12, 5, 8, 0, 0, 0, loc))
		assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, loc), w.MonthStart)
		assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, loc), w.MonthEnd)
	})
}

func TestGetDashboard(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cita := func(fecha time.Time, estado string) *model.Cita {
		return &model.Cita{ID: uuid.New(), PacienteID: uuid.New(), Fecha: fecha, Duracion: 30, Estado: estado}
	}

	citaRepo := &stubCitaRepo{citas: []*model.Cita{
		cita(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), model.CitaEstadoPendiente),
		cita(time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC), model.CitaEstadoEnCurso),
		cita(time.Date(2026, 3, 15, 16, 0, 0, 0, time.UTC), model.CitaEstadoCancelada),
		cita(time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC), model.CitaEstadoPendiente),
		cita(time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), model.CitaEstadoPendiente),
	}}
	pacienteRepo := &stubPacienteRepo{total: 25, activos: 20}

	svc := NewService(citaRepo, pacienteRepo)
	svc.now = func() time.Time { return now }

	stats, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 25, stats.TotalPacientes)
	assert.Equal(t, 20, stats.PacientesActivos)
	assert.Equal(t, 4, stats.CitasMes)
	assert.Len(t, stats.ProximasCitas, 2)
	assert.Equal(t, len(stats.ProximasCitas), stats.CitasHoy)

	sum := 0
	for _, ec := range stats.CitasPorEstado {
		sum += ec.Cantidad
	}
	assert.Equal(t, stats.CitasMes, sum)
}

func TestGetDashboardEmpty(t *testing.T) {
	svc := NewService(&stubCitaRepo{}, &stubPacienteRepo{})
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	stats, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.CitasHoy)
	assert.NotNil(t, stats.ProximasCitas)
	assert.Empty(t, stats.ProximasCitas)
	assert.NotNil(t, stats.CitasPorEstado)
	assert.Empty(t, stats.CitasPorEstado)
}

func TestGetDashboardCapsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	var citas []*model.Cita
	for i := 0; i < 14; i++ {
		citas = append(citas, &model.Cita{
			ID:         uuid.New(),
			PacienteID: uuid.New(),
			Fecha:      time.Date(2026, 3, 15, 8, i, 0, 0, time.UTC),
			Estado:     model.CitaEstadoPendiente,
		})
	}

	svc := NewService(&stubCitaRepo{citas: citas}, &stubPacienteRepo{})
	svc.now = func() time.Time { return now }

	stats, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Len(t, stats.ProximasCitas, upcomingLimit)
	assert.Equal(t, upcomingLimit, stats.CitasHoy)
	assert.Equal(t, 14, stats.CitasMes)
}
