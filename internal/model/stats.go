package model

type EstadoCount struct {
	Estado   string `db:"estado" json:"estado"`
	Cantidad int    `db:"cantidad" json:"cantidad"`
}

// DashboardStats is the aggregate served by GET /stats/dashboard.
// CitasHoy is, deliberately, the length of ProximasCitas: it counts only
// today's citas in pendiente/en_curso and is capped with the list at 10.
type DashboardStats struct {
	TotalPacientes   int           `json:"totalPacientes"`
	PacientesActivos int           `json:"pacientesActivos"`
	CitasMes         int           `json:"citasMes"`
	CitasHoy         int           `json:"citasHoy"`
	ProximasCitas    []*Cita       `json:"proximasCitas"`
	CitasPorEstado   []EstadoCount `json:"citasPorEstado"`
}
