package model

import (
	"time"

	"github.com/google/uuid"
)

// Cita estado values commonly seen in the data. The column is free-form
// text and no transition table is enforced: any estado may follow any
// other. The constants exist for defaults and the dashboard filter.
const (
	CitaEstadoPendiente  = "pendiente"
	CitaEstadoEnCurso    = "en_curso"
	CitaEstadoCompletada = "completada"
	CitaEstadoCancelada  = "cancelada"
)

const (
	// CitaDuracionMinima is the floor for duracion, in minutes.
	CitaDuracionMinima = 15
	// CitaDuracionDefault is used when a create request omits duracion.
	CitaDuracionDefault = 30
)

type Cita struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	PacienteID uuid.UUID        `db:"paciente_id" json:"pacienteId"`
	Fecha      time.Time        `db:"fecha" json:"fecha"`
	Duracion   int              `db:"duracion" json:"duracion"`
	Motivo     *string          `db:"motivo" json:"motivo,omitempty"`
	Estado     string           `db:"estado" json:"estado"`
	Notas      *string          `db:"notas" json:"notas,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
	Paciente   *PacienteResumen `db:"paciente" json:"paciente,omitempty"`
}

// CitaDetalle is a cita joined with the full paciente row, returned by
// the single-cita lookup. The outer Paciente shadows the embedded
// projection on marshal.
type CitaDetalle struct {
	Cita
	Paciente *Paciente `json:"paciente"`
}

type CreateCitaRequest struct {
	PacienteID uuid.UUID `json:"pacienteId" binding:"required"`
	Fecha      string    `json:"fecha" binding:"required"`
	Duracion   *int      `json:"duracion"`
	Motivo     *string   `json:"motivo"`
	Estado     *string   `json:"estado"`
	Notas      *string   `json:"notas"`
}

type UpdateCitaRequest struct {
	PacienteID *uuid.UUID `json:"pacienteId"`
	Fecha      *string    `json:"fecha"`
	Duracion   *int       `json:"duracion"`
	Motivo     *string    `json:"motivo"`
	Estado     *string    `json:"estado"`
	Notas      *string    `json:"notas"`
}

type UpdateEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}
