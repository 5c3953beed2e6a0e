package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/clinidesk/citas-api/internal/model"
	"github.com/clinidesk/citas-api/internal/repository"
)

const citaColumns = `c.id, c.paciente_id, c.fecha, c.duracion, c.motivo, c.estado, c.notas, c.created_at, c.updated_at`

// Projections of the joined paciente, widest to narrowest. The aliases
// feed the nested PacienteResumen struct.
const (
	pacienteProjFull = `p.id AS "paciente.id", p.nombres AS "paciente.nombres", p.apellidos AS "paciente.apellidos",
		p.documento AS "paciente.documento", p.telefono AS "paciente.telefono", p.email AS "paciente.email"`
	pacienteProjBasic = `p.id AS "paciente.id", p.nombres AS "paciente.nombres", p.apellidos AS "paciente.apellidos",
		p.documento AS "paciente.documento"`
	pacienteProjMin      = `p.id AS "paciente.id", p.nombres AS "paciente.nombres", p.apellidos AS "paciente.apellidos"`
	pacienteProjContacto = `p.id AS "paciente.id", p.nombres AS "paciente.nombres", p.apellidos AS "paciente.apellidos",
		p.telefono AS "paciente.telefono"`
)

func (r *citaRepository) Create(ctx context.Context, cita *model.Cita) error {
	query := `
		INSERT INTO citas (id, paciente_id, fecha, duracion, motivo, estado, notas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	cita.ID = uuid.New()
	cita.CreatedAt = time.Now()
	cita.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		cita.ID,
		cita.PacienteID,
		cita.Fecha,
		cita.Duracion,
		cita.Motivo,
		cita.Estado,
		cita.Notas,
		cita.CreatedAt,
		cita.UpdatedAt,
	)
	if err != nil {
		return translate("failed to create cita", err)
	}
	return nil
}

func (r *citaRepository) Get(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	query := `
		SELECT id, paciente_id, fecha, duracion, motivo, estado, notas, created_at, updated_at
		FROM citas
		WHERE id = $1
	`
	var cita model.Cita
	if err := r.db.GetContext(ctx, &cita, query, id); err != nil {
		return nil, translate("failed to get cita", err)
	}
	return &cita, nil
}

func (r *citaRepository) GetConPaciente(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		WHERE c.id = $1
	`, citaColumns, pacienteProjFull)

	var cita model.Cita
	if err := r.db.GetContext(ctx, &cita, query, id); err != nil {
		return nil, translate("failed to get cita", err)
	}
	return &cita, nil
}

func (r *citaRepository) GetConPacienteMin(ctx context.Context, id uuid.UUID) (*model.Cita, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		WHERE c.id = $1
	`, citaColumns, pacienteProjMin)

	var cita model.Cita
	if err := r.db.GetContext(ctx, &cita, query, id); err != nil {
		return nil, translate("failed to get cita", err)
	}
	return &cita, nil
}

func (r *citaRepository) List(ctx context.Context) ([]*model.Cita, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		ORDER BY c.fecha DESC
	`, citaColumns, pacienteProjFull)

	var citas []*model.Cita
	if err := r.db.SelectContext(ctx, &citas, query); err != nil {
		return nil, translate("failed to list citas", err)
	}
	return citas, nil
}

func (r *citaRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*model.Cita, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		WHERE c.fecha >= $1 AND c.fecha <= $2
		ORDER BY c.fecha ASC
	`, citaColumns, pacienteProjFull)

	var citas []*model.Cita
	if err := r.db.SelectContext(ctx, &citas, query, start, end); err != nil {
		return nil, translate("failed to list citas by date range", err)
	}
	return citas, nil
}

func (r *citaRepository) ListByPaciente(ctx context.Context, pacienteID uuid.UUID) ([]*model.Cita, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		WHERE c.paciente_id = $1
		ORDER BY c.fecha DESC
	`, citaColumns, pacienteProjBasic)

	var citas []*model.Cita
	if err := r.db.SelectContext(ctx, &citas, query, pacienteID); err != nil {
		return nil, translate("failed to list citas by paciente", err)
	}
	return citas, nil
}

func (r *citaRepository) ListUpcoming(ctx context.Context, start, end time.Time, estados []string, limit int) ([]*model.Cita, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM citas c
		JOIN pacientes p ON p.id = c.paciente_id
		WHERE c.fecha >= ? AND c.fecha <= ?
		AND c.estado IN (?)
		ORDER BY c.fecha ASC
		LIMIT ?
	`, citaColumns, pacienteProjContacto)

	query, args, err := sqlx.In(query, start, end, estados, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build upcoming query: %w", err)
	}
	query = r.db.Rebind(query)

	var citas []*model.Cita
	if err := r.db.SelectContext(ctx, &citas, query, args...); err != nil {
		return nil, translate("failed to list upcoming citas", err)
	}
	return citas, nil
}

func (r *citaRepository) Update(ctx context.Context, cita *model.Cita) error {
	query := `
		UPDATE citas
		SET paciente_id = $1, fecha = $2, duracion = $3, motivo = $4, estado = $5, notas = $6, updated_at = $7
		WHERE id = $8
	`
	cita.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		cita.PacienteID,
		cita.Fecha,
		cita.Duracion,
		cita.Motivo,
		cita.Estado,
		cita.Notas,
		cita.UpdatedAt,
		cita.ID,
	)
	if err != nil {
		return translate("failed to update cita", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update cita: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *citaRepository) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	query := `UPDATE citas SET estado = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, estado, time.Now(), id)
	if err != nil {
		return translate("failed to update cita estado", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update cita estado: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *citaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM citas WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translate("failed to delete cita", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete cita: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *citaRepository) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM citas WHERE fecha >= $1 AND fecha <= $2`

	var count int
	if err := r.db.GetContext(ctx, &count, query, start, end); err != nil {
		return 0, translate("failed to count citas", err)
	}
	return count, nil
}

func (r *citaRepository) CountByEstadoInRange(ctx context.Context, start, end time.Time) ([]model.EstadoCount, error) {
	query := `
		SELECT estado, COUNT(*) AS cantidad
		FROM citas
		WHERE fecha >= $1 AND fecha <= $2
		GROUP BY estado
	`
	var counts []model.EstadoCount
	if err := r.db.SelectContext(ctx, &counts, query, start, end); err != nil {
		return nil, translate("failed to count citas by estado", err)
	}
	return counts, nil
}
