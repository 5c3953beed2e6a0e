package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/clinidesk/citas-api/internal/model"
	"github.com/clinidesk/citas-api/internal/repository"
)

// upcomingLimit caps proximasCitas; citasHoy is the length of that
// capped, estado-filtered list, not an independent total.
const upcomingLimit = 10

var upcomingEstados = []string{model.CitaEstadoPendiente, model.CitaEstadoEnCurso}

// Service is the read-only dashboard aggregator. No caching: every call
// recomputes from current persisted state.
type Service struct {
	citaRepo     repository.CitaRepository
	pacienteRepo repository.PacienteRepository
	now          func() time.Time
}

func NewService(citaRepo repository.CitaRepository, pacienteRepo repository.PacienteRepository) *Service {
	return &Service{
		citaRepo:     citaRepo,
		pacienteRepo: pacienteRepo,
		now:          time.Now,
	}
}

// Windows holds the inclusive month and day bounds for one dashboard call.
type Windows struct {
	MonthStart time.Time
	MonthEnd   time.Time
	DayStart   time.Time
	DayEnd     time.Time
}

// WindowsAt computes the calendar windows relative to now. The month end
// is the last day of the month at midnight, the day end is 23:59:59;
// both bounds are inclusive.
func WindowsAt(now time.Time) Windows {
	year, month, day := now.Date()
	loc := now.Location()
	return Windows{
		MonthStart: time.Date(year, month, 1, 0, 0, 0, 0, loc),
		MonthEnd:   time.Date(year, month+1, 0, 0, 0, 0, 0, loc),
		DayStart:   time.Date(year, month, day, 0, 0, 0, 0, loc),
		DayEnd:     time.Date(year, month, day, 23, 59, 59, 0, loc),
	}
}

func (s *Service) GetDashboard(ctx context.Context) (*model.DashboardStats, error) {
	w := WindowsAt(s.now())

	totalPacientes, err := s.pacienteRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pacientes: %w", err)
	}

	pacientesActivos, err := s.pacienteRepo.CountByEstado(ctx, model.PacienteEstadoActivo)
	if err != nil {
		return nil, fmt.Errorf("failed to count active pacientes: %w", err)
	}

	citasMes, err := s.citaRepo.CountInRange(ctx, w.MonthStart, w.MonthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count citas this month: %w", err)
	}

	proximas, err := s.citaRepo.ListUpcoming(ctx, w.DayStart, w.DayEnd, upcomingEstados, upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's upcoming citas: %w", err)
	}
	if proximas == nil {
		proximas = []*model.Cita{}
	}

	porEstado, err := s.citaRepo.CountByEstadoInRange(ctx, w.MonthStart, w.MonthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to count citas by estado: %w", err)
	}
	if porEstado == nil {
		porEstado = []model.EstadoCount{}
	}

	return &model.DashboardStats{
		TotalPacientes:   totalPacientes,
		PacientesActivos: pacientesActivos,
		CitasMes:         citasMes,
		CitasHoy:         len(proximas),
		ProximasCitas:    proximas,
		CitasPorEstado:   porEstado,
	}, nil
}
