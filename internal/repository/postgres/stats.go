package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/jugador-equipo/internal/domain"
)

// StatsRepository реализует repository.StatsRepository для PostgreSQL
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository создает новый экземпляр StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// EquipoStats возвращает количество игроков и сумму канаст по каждой команде
func (r *StatsRepository) EquipoStats(ctx context.Context) ([]domain.EquipoStats, error) {
	query := `
		SELECT
			e.id,
			e.nombre_equipo,
			COUNT(j.id) AS total_jugadores,
			COALESCE(SUM(j.canastas_totales), 0) AS total_canastas
		FROM equipos e
		LEFT JOIN jugadores j ON j.equipo_id = e.id
		GROUP BY e.id, e.nombre_equipo
		ORDER BY e.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipo stats: %w", err)
	}
	defer rows.Close()

	stats := make([]domain.EquipoStats, 0)
	for rows.Next() {
		var s domain.EquipoStats
		if err := rows.Scan(&s.EquipoID, &s.NombreEquipo, &s.TotalJugadores, &s.TotalCanastas); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
