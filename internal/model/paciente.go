package model

import (
	"time"

	"github.com/google/uuid"
)

// Paciente estado values. The column is free-form text; "activo" is the
// only value the dashboard cares about.
const (
	PacienteEstadoActivo   = "activo"
	PacienteEstadoInactivo = "inactivo"
)

type Paciente struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Nombres       string     `db:"nombres" json:"nombres"`
	Apellidos     string     `db:"apellidos" json:"apellidos"`
	TipoDocumento string     `db:"tipo_documento" json:"tipoDocumento"`
	Documento     string     `db:"documento" json:"documento"`
	Email         *string    `db:"email" json:"email,omitempty"`
	Telefono      *string    `db:"telefono" json:"telefono,omitempty"`
	Nacimiento    *time.Time `db:"nacimiento" json:"nacimiento,omitempty"`
	Sexo          *string    `db:"sexo" json:"sexo,omitempty"`
	Direccion     *string    `db:"direccion" json:"direccion,omitempty"`
	Notas         *string    `db:"notas" json:"notas,omitempty"`
	Estado        string     `db:"estado" json:"estado"`
	Etiquetas     *string    `db:"etiquetas" json:"etiquetas,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// PacienteResumen is the denormalized projection attached to citas for
// display. Queries select only the columns each listing needs; the rest
// stay nil and drop out of the JSON.
type PacienteResumen struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Nombres   string    `db:"nombres" json:"nombres"`
	Apellidos string    `db:"apellidos" json:"apellidos"`
	Documento *string   `db:"documento" json:"documento,omitempty"`
	Telefono  *string   `db:"telefono" json:"telefono,omitempty"`
	Email     *string   `db:"email" json:"email,omitempty"`
}

type CreatePacienteRequest struct {
	Nombres       string  `json:"nombres" binding:"required"`
	Apellidos     string  `json:"apellidos" binding:"required"`
	TipoDocumento string  `json:"tipoDocumento" binding:"required"`
	Documento     string  `json:"documento" binding:"required,documento"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Telefono      *string `json:"telefono"`
	Nacimiento    *string `json:"nacimiento"`
	Sexo          *string `json:"sexo"`
	Direccion     *string `json:"direccion"`
	Notas         *string `json:"notas"`
	Estado        *string `json:"estado"`
	Etiquetas     *string `json:"etiquetas"`
}

type UpdatePacienteRequest struct {
	Nombres       *string `json:"nombres"`
	Apellidos     *string `json:"apellidos"`
	TipoDocumento *string `json:"tipoDocumento"`
	Documento     *string `json:"documento" binding:"omitempty,documento"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Telefono      *string `json:"telefono"`
	Nacimiento    *string `json:"nacimiento"`
	Sexo          *string `json:"sexo"`
	Direccion     *string `json:"direccion"`
	Notas         *string `json:"notas"`
	Estado        *string `json:"estado"`
	Etiquetas     *string `json:"etiquetas"`
}
