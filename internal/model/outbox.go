package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// Event types recorded by the mutation paths and published to the broker.
const (
	EventCitaCreada          = "cita.creada"
	EventCitaActualizada     = "cita.actualizada"
	EventCitaEstadoCambiado  = "cita.estado_cambiado"
	EventCitaEliminada       = "cita.eliminada"
	EventPacienteCreado      = "paciente.creado"
	EventPacienteActualizado = "paciente.actualizado"
	EventPacienteEliminado   = "paciente.eliminado"
)

type OutboxEvent struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	EventType    string          `db:"event_type" json:"event_type"`
	Payload      json.RawMessage `db:"payload" json:"payload"`
	Status       string          `db:"status" json:"status"`
	ErrorMessage *string         `db:"error_message" json:"error_message,omitempty"`
	RetryCount   int             `db:"retry_count" json:"retry_count"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt  *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
