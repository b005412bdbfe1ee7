package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

const equipoColumns = `id, nombre_equipo, localidad`

// EquipoRepository реализует repository.EquipoRepository для PostgreSQL
type EquipoRepository struct {
	db *pgxpool.Pool
}

// NewEquipoRepository создает новый экземпляр EquipoRepository
func NewEquipoRepository(db *pgxpool.Pool) *EquipoRepository {
	return &EquipoRepository{db: db}
}

// FindAll возвращает все команды, упорядоченные по ID
func (r *EquipoRepository) FindAll(ctx context.Context) ([]*domain.Equipo, error) {
	query := `SELECT ` + equipoColumns + ` FROM equipos ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipos: %w", err)
	}
	return collectEquipos(rows)
}

// FindPage возвращает одну страницу команд
func (r *EquipoRepository) FindPage(ctx context.Context, page repository.Page) ([]*domain.Equipo, error) {
	query := `SELECT ` + equipoColumns + ` FROM equipos ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query equipos page: %w", err)
	}
	return collectEquipos(rows)
}

// FindByID получает команду по ID
func (r *EquipoRepository) FindByID(ctx context.Context, id int64) (*domain.Equipo, error) {
	query := `SELECT ` + equipoColumns + ` FROM equipos WHERE id = $1`

	equipo, err := scanEquipo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEquipoNotFound
		}
		return nil, err
	}

	return equipo, nil
}

// Save создает новую команду или обновляет существующую
func (r *EquipoRepository) Save(ctx context.Context, equipo *domain.Equipo) (*domain.Equipo, error) {
	if !equipo.HasID() {
		return r.insert(ctx, equipo)
	}
	return r.update(ctx, equipo)
}

func (r *EquipoRepository) insert(ctx context.Context, equipo *domain.Equipo) (*domain.Equipo, error) {
	query := `
		INSERT INTO equipos (nombre_equipo, localidad)
		VALUES ($1, $2)
		RETURNING ` + equipoColumns

	saved, err := scanEquipo(r.db.QueryRow(ctx, query, equipo.NombreEquipo, equipo.Localidad))
	if err != nil {
		return nil, fmt.Errorf("failed to insert equipo: %w", err)
	}
	return saved, nil
}

func (r *EquipoRepository) update(ctx context.Context, equipo *domain.Equipo) (*domain.Equipo, error) {
	query := `
		UPDATE equipos
		SET nombre_equipo = $2, localidad = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + equipoColumns

	saved, err := scanEquipo(r.db.QueryRow(ctx, query, *equipo.ID, equipo.NombreEquipo, equipo.Localidad))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEquipoNotFound
		}
		return nil, fmt.Errorf("failed to update equipo: %w", err)
	}
	return saved, nil
}

// DeleteByID удаляет команду. Игроки команды остаются без команды (ON DELETE SET NULL)
func (r *EquipoRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM equipos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete equipo: %w", err)
	}
	return nil
}

// Count возвращает количество команд
func (r *EquipoRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM equipos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count equipos: %w", err)
	}
	return count, nil
}

func scanEquipo(row pgx.Row) (*domain.Equipo, error) {
	var (
		equipo domain.Equipo
		id     int64
	)
	if err := row.Scan(&id, &equipo.NombreEquipo, &equipo.Localidad); err != nil {
		return nil, err
	}
	equipo.ID = &id
	return &equipo, nil
}

func collectEquipos(rows pgx.Rows) ([]*domain.Equipo, error) {
	defer rows.Close()

	equipos := make([]*domain.Equipo, 0)
	for rows.Next() {
		equipo, err := scanEquipo(rows)
		if err != nil {
			return nil, err
		}
		equipos = append(equipos, equipo)
	}

	return equipos, rows.Err()
}

var (
	_ repository.EquipoRepository  = (*EquipoRepository)(nil)
	_ repository.JugadorRepository = (*JugadorRepository)(nil)
	_ repository.StatsRepository   = (*StatsRepository)(nil)
)
