package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

const jugadorSelect = `
	SELECT j.id,
	       j.nombre_jugador,
	       j.canastas_totales,
	       j.asistencias_totales,
	       j.rebotes_totales,
	       j.posicion,
	       j.fecha_nacimiento,
	       e.id,
	       e.nombre_equipo,
	       e.localidad
	FROM jugadores j
	LEFT JOIN equipos e ON e.id = j.equipo_id
`

// JugadorRepository реализует repository.JugadorRepository для PostgreSQL
type JugadorRepository struct {
	db *pgxpool.Pool
}

// NewJugadorRepository создает новый экземпляр JugadorRepository
func NewJugadorRepository(db *pgxpool.Pool) *JugadorRepository {
	return &JugadorRepository{db: db}
}

// FindAll возвращает всех игроков, упорядоченных по ID
func (r *JugadorRepository) FindAll(ctx context.Context) ([]*domain.Jugador, error) {
	return r.query(ctx, jugadorSelect+` ORDER BY j.id`)
}

// FindPage возвращает одну страницу игроков
func (r *JugadorRepository) FindPage(ctx context.Context, page repository.Page) ([]*domain.Jugador, error) {
	return r.query(ctx, jugadorSelect+` ORDER BY j.id LIMIT $1 OFFSET $2`, page.Size, page.Offset())
}

// FindByCanastasAtLeast возвращает лучших бомбардиров: сначала по канастам, затем по ID
func (r *JugadorRepository) FindByCanastasAtLeast(ctx context.Context, min int) ([]*domain.Jugador, error) {
	return r.query(ctx, jugadorSelect+` WHERE j.canastas_totales >= $1 ORDER BY j.canastas_totales DESC, j.id`, min)
}

// FindByEquipo возвращает игроков команды
func (r *JugadorRepository) FindByEquipo(ctx context.Context, equipoID int64) ([]*domain.Jugador, error) {
	return r.query(ctx, jugadorSelect+` WHERE j.equipo_id = $1 ORDER BY j.id`, equipoID)
}

// FindByID получает игрока по ID
func (r *JugadorRepository) FindByID(ctx context.Context, id int64) (*domain.Jugador, error) {
	jugador, err := scanJugador(r.db.QueryRow(ctx, jugadorSelect+` WHERE j.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJugadorNotFound
		}
		return nil, err
	}
	return jugador, nil
}

// Save создает или обновляет игрока и возвращает его вместе с командой
func (r *JugadorRepository) Save(ctx context.Context, jugador *domain.Jugador) (*domain.Jugador, error) {
	// Start transaction: write and read back the joined row atomically
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	var fecha *time.Time
	if jugador.FechaNacimiento != nil {
		fecha = &jugador.FechaNacimiento.Time
	}

	var id int64
	if jugador.HasID() {
		query := `
			UPDATE jugadores
			SET nombre_jugador = $2, canastas_totales = $3, asistencias_totales = $4,
			    rebotes_totales = $5, posicion = $6, fecha_nacimiento = $7, equipo_id = $8,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING id
		`
		err = tx.QueryRow(ctx, query, *jugador.ID, jugador.NombreJugador, jugador.CanastasTotales,
			jugador.AsistenciasTotales, jugador.RebotesTotales, jugador.Posicion, fecha, jugador.EquipoID(),
		).Scan(&id)
	} else {
		query := `
			INSERT INTO jugadores (nombre_jugador, canastas_totales, asistencias_totales,
			                       rebotes_totales, posicion, fecha_nacimiento, equipo_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		err = tx.QueryRow(ctx, query, jugador.NombreJugador, jugador.CanastasTotales,
			jugador.AsistenciasTotales, jugador.RebotesTotales, jugador.Posicion, fecha, jugador.EquipoID(),
		).Scan(&id)
	}
	if err != nil {
		return nil, translateJugadorError(err)
	}

	saved, err := scanJugador(tx.QueryRow(ctx, jugadorSelect+` WHERE j.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to reload jugador: %w", err)
	}

	// Commit transaction
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}

// DeleteByID удаляет игрока
func (r *JugadorRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM jugadores WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete jugador: %w", err)
	}
	return nil
}

// Count возвращает количество игроков
func (r *JugadorRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jugadores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jugadores: %w", err)
	}
	return count, nil
}

func (r *JugadorRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Jugador, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jugadores: %w", err)
	}
	defer rows.Close()

	jugadores := make([]*domain.Jugador, 0)
	for rows.Next() {
		jugador, err := scanJugador(rows)
		if err != nil {
			return nil, err
		}
		jugadores = append(jugadores, jugador)
	}

	return jugadores, rows.Err()
}

func translateJugadorError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrJugadorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return domain.ErrUnknownEquipo
		case "23514": // check_violation
			return domain.ErrInvalidJugador
		}
	}
	return fmt.Errorf("failed to save jugador: %w", err)
}

func scanJugador(row pgx.Row) (*domain.Jugador, error) {
	var (
		jugador      domain.Jugador
		id           int64
		fecha        *time.Time
		equipoID     *int64
		nombreEquipo *string
		localidad    *string
	)

	err := row.Scan(
		&id,
		&jugador.NombreJugador,
		&jugador.CanastasTotales,
		&jugador.AsistenciasTotales,
		&jugador.RebotesTotales,
		&jugador.Posicion,
		&fecha,
		&equipoID,
		&nombreEquipo,
		&localidad,
	)
	if err != nil {
		return nil, err
	}

	jugador.ID = &id
	if fecha != nil {
		jugador.FechaNacimiento = &domain.Date{Time: *fecha}
	}
	if equipoID != nil {
		jugador.Equipo = &domain.Equipo{
			ID:           equipoID,
			NombreEquipo: nombreEquipo,
			Localidad:    localidad,
		}
	}

	return &jugador, nil
}
