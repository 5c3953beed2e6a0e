package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinidesk/citas-api/internal/model"
	"github.com/clinidesk/citas-api/internal/repository"
)

func (r *pacienteRepository) Create(ctx context.Context, paciente *model.Paciente) error {
	query := `
		INSERT INTO pacientes (
			id, nombres, apellidos, tipo_documento, documento, email, telefono,
			nacimiento, sexo, direccion, notas, estado, etiquetas, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	paciente.ID = uuid.New()
	paciente.CreatedAt = time.Now()
	paciente.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		paciente.ID,
		paciente.Nombres,
		paciente.Apellidos,
		paciente.TipoDocumento,
		paciente.Documento,
		paciente.Email,
		paciente.Telefono,
		paciente.Nacimiento,
		paciente.Sexo,
		paciente.Direccion,
		paciente.Notas,
		paciente.Estado,
		paciente.Etiquetas,
		paciente.CreatedAt,
		paciente.UpdatedAt,
	)
	if err != nil {
		return translate("failed to create paciente", err)
	}
	return nil
}

func (r *pacienteRepository) Get(ctx context.Context, id uuid.UUID) (*model.Paciente, error) {
	query := `SELECT * FROM pacientes WHERE id = $1`

	var paciente model.Paciente
	if err := r.db.GetContext(ctx, &paciente, query, id); err != nil {
		return nil, translate("failed to get paciente", err)
	}
	return &paciente, nil
}

func (r *pacienteRepository) GetByDocumento(ctx context.Context, documento string) (*model.Paciente, error) {
	query := `SELECT * FROM pacientes WHERE documento = $1`

	var paciente model.Paciente
	if err := r.db.GetContext(ctx, &paciente, query, documento); err != nil {
		return nil, translate("failed to get paciente by documento", err)
	}
	return &paciente, nil
}

func (r *pacienteRepository) List(ctx context.Context) ([]*model.Paciente, error) {
	query := `SELECT * FROM pacientes ORDER BY created_at DESC`

	var pacientes []*model.Paciente
	if err := r.db.SelectContext(ctx, &pacientes, query); err != nil {
		return nil, translate("failed to list pacientes", err)
	}
	return pacientes, nil
}

func (r *pacienteRepository) Update(ctx context.Context, paciente *model.Paciente) error {
	query := `
		UPDATE pacientes
		SET nombres = $1, apellidos = $2, tipo_documento = $3, documento = $4, email = $5,
			telefono = $6, nacimiento = $7, sexo = $8, direccion = $9, notas = $10,
			estado = $11, etiquetas = $12, updated_at = $13
		WHERE id = $14
	`
	paciente.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		paciente.Nombres,
		paciente.Apellidos,
		paciente.TipoDocumento,
		paciente.Documento,
		paciente.Email,
		paciente.Telefono,
		paciente.Nacimiento,
		paciente.Sexo,
		paciente.Direccion,
		paciente.Notas,
		paciente.Estado,
		paciente.Etiquetas,
		paciente.UpdatedAt,
		paciente.ID,
	)
	if err != nil {
		return translate("failed to update paciente", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to update paciente: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *pacienteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM pacientes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return translate("failed to delete paciente", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to delete paciente: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *pacienteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pacientes`); err != nil {
		return 0, translate("failed to count pacientes", err)
	}
	return count, nil
}

func (r *pacienteRepository) CountByEstado(ctx context.Context, estado string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM pacientes WHERE estado = $1`, estado); err != nil {
		return 0, translate("failed to count pacientes by estado", err)
	}
	return count, nil
}
