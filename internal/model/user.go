package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an API credential holder (clinic staff), not a paciente.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Nombre       string    `db:"nombre" json:"nombre"`
	Apellido     string    `db:"apellido" json:"apellido"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"-"`
}
