package memory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

// EquipoRepository реализует repository.EquipoRepository поверх memdb
type EquipoRepository struct {
	db *memdb.MemDB
}

// FindAll возвращает все команды, упорядоченные по ID
func (r *EquipoRepository) FindAll(context.Context) ([]*domain.Equipo, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEquipo, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipos: %w", err)
	}
	return toEquipos(collect[equipoRecord](it)), nil
}

// FindPage возвращает одну страницу команд
func (r *EquipoRepository) FindPage(_ context.Context, page repository.Page) ([]*domain.Equipo, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEquipo, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipos page: %w", err)
	}
	return toEquipos(paginate[equipoRecord](it, page)), nil
}

// FindByID получает команду по ID
func (r *EquipoRepository) FindByID(_ context.Context, id int64) (*domain.Equipo, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	e, err := findEquipo(txn, id)
	if err != nil {
		return nil, err
	}
	return e.toDomain(), nil
}

// Save создает команду (если ID пустой) или заменяет существующую
func (r *EquipoRepository) Save(_ context.Context, equipo *domain.Equipo) (*domain.Equipo, error) {
	txn := r.db.Txn(true)
	defer txn.Abort()

	var id int64
	if equipo.HasID() {
		id = *equipo.ID
		if _, err := findEquipo(txn, id); err != nil {
			return nil, err
		}
	} else {
		next, err := nextID(txn, tableEquipo)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate equipo id: %w", err)
		}
		id = next
	}

	record := &equipoRecord{
		ID:           id,
		NombreEquipo: cloneString(equipo.NombreEquipo),
		Localidad:    cloneString(equipo.Localidad),
	}
	if err := txn.Insert(tableEquipo, record); err != nil {
		return nil, fmt.Errorf("failed to save equipo: %w", err)
	}

	txn.Commit()
	return record.toDomain(), nil
}

// DeleteByID удаляет команду, ее игроки остаются без команды
func (r *EquipoRepository) DeleteByID(_ context.Context, id int64) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableEquipo, indexID, id)
	if err != nil {
		return fmt.Errorf("failed to query equipo: %w", err)
	}
	if raw == nil {
		return nil
	}

	it, err := txn.Get(tableJugador, indexEquipo, id)
	if err != nil {
		return fmt.Errorf("failed to query jugadores: %w", err)
	}
	for _, j := range collect[jugadorRecord](it) {
		detached := *j
		detached.EquipoID = nil
		if err := txn.Insert(tableJugador, &detached); err != nil {
			return fmt.Errorf("failed to detach jugador %d: %w", j.ID, err)
		}
	}

	if err := txn.Delete(tableEquipo, raw); err != nil {
		return fmt.Errorf("failed to delete equipo: %w", err)
	}

	txn.Commit()
	return nil
}

// Count возвращает количество команд
func (r *EquipoRepository) Count(context.Context) (int, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEquipo, indexID)
	if err != nil {
		return 0, fmt.Errorf("failed to count equipos: %w", err)
	}
	return count(it), nil
}

func findEquipo(txn *memdb.Txn, id int64) (*equipoRecord, error) {
	raw, err := txn.First(tableEquipo, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipo: %w", err)
	}
	if raw == nil {
		return nil, domain.ErrEquipoNotFound
	}
	return raw.(*equipoRecord), nil
}

func (e *equipoRecord) toDomain() *domain.Equipo {
	return &domain.Equipo{
		ID:           domain.Int64Ptr(e.ID),
		NombreEquipo: cloneString(e.NombreEquipo),
		Localidad:    cloneString(e.Localidad),
	}
}

func toEquipos(records []*equipoRecord) []*domain.Equipo {
	equipos := make([]*domain.Equipo, 0, len(records))
	for _, e := range records {
		equipos = append(equipos, e.toDomain())
	}
	return equipos
}
