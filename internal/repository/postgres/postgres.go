package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/clinidesk/citas-api/internal/repository"
)

type citaRepository struct {
	db *sqlx.DB
}

type pacienteRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewCitaRepository(db *sqlx.DB) repository.CitaRepository {
	return &citaRepository{db: db}
}

func NewPacienteRepository(db *sqlx.DB) repository.PacienteRepository {
	return &pacienteRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
