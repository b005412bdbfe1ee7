package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-memdb"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

// JugadorRepository реализует repository.JugadorRepository поверх memdb
type JugadorRepository struct {
	db *memdb.MemDB
}

// FindAll возвращает всех игроков, упорядоченных по ID
func (r *JugadorRepository) FindAll(context.Context) ([]*domain.Jugador, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableJugador, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jugadores: %w", err)
	}
	return toJugadores(txn, collect[jugadorRecord](it)), nil
}

// FindPage возвращает одну страницу игроков
func (r *JugadorRepository) FindPage(_ context.Context, page repository.Page) ([]*domain.Jugador, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableJugador, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jugadores page: %w", err)
	}
	return toJugadores(txn, paginate[jugadorRecord](it, page)), nil
}

// FindByCanastasAtLeast возвращает лучших бомбардиров: сначала по канастам, затем по ID
func (r *JugadorRepository) FindByCanastasAtLeast(_ context.Context, min int) ([]*domain.Jugador, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	// Индекс отдает канасты по возрастанию, внутри одного значения по ID
	it, err := txn.LowerBound(tableJugador, indexCanastas, min)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scorers: %w", err)
	}

	records := collect[jugadorRecord](it)
	sort.SliceStable(records, func(i, k int) bool {
		return records[i].CanastasTotales > records[k].CanastasTotales
	})
	return toJugadores(txn, records), nil
}

// FindByEquipo возвращает игроков команды
func (r *JugadorRepository) FindByEquipo(_ context.Context, equipoID int64) ([]*domain.Jugador, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableJugador, indexEquipo, equipoID)
	if err != nil {
		return nil, fmt.Errorf("failed to query jugadores: %w", err)
	}
	return toJugadores(txn, collect[jugadorRecord](it)), nil
}

// FindByID получает игрока по ID
func (r *JugadorRepository) FindByID(_ context.Context, id int64) (*domain.Jugador, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	j, err := findJugador(txn, id)
	if err != nil {
		return nil, err
	}
	return j.toDomain(txn), nil
}

// Save создает или обновляет игрока и возвращает его вместе с командой
func (r *JugadorRepository) Save(_ context.Context, jugador *domain.Jugador) (*domain.Jugador, error) {
	if err := jugador.Validate(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	var equipoID *int64
	if ref := jugador.EquipoID(); ref != nil {
		if _, err := findEquipo(txn, *ref); err != nil {
			return nil, domain.ErrUnknownEquipo
		}
		equipoID = domain.Int64Ptr(*ref)
	}

	var id int64
	if jugador.HasID() {
		id = *jugador.ID
		if _, err := findJugador(txn, id); err != nil {
			return nil, err
		}
	} else {
		next, err := nextID(txn, tableJugador)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate jugador id: %w", err)
		}
		id = next
	}

	record := &jugadorRecord{
		ID:                 id,
		NombreJugador:      cloneString(jugador.NombreJugador),
		CanastasTotales:    jugador.CanastasTotales,
		AsistenciasTotales: jugador.AsistenciasTotales,
		RebotesTotales:     jugador.RebotesTotales,
		Posicion:           cloneString(jugador.Posicion),
		FechaNacimiento:    cloneDate(jugador.FechaNacimiento),
		EquipoID:           equipoID,
	}
	if err := txn.Insert(tableJugador, record); err != nil {
		return nil, fmt.Errorf("failed to save jugador: %w", err)
	}

	saved := record.toDomain(txn)
	txn.Commit()
	return saved, nil
}

// DeleteByID удаляет игрока, отсутствие записи не считается ошибкой
func (r *JugadorRepository) DeleteByID(_ context.Context, id int64) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	if _, err := txn.DeleteAll(tableJugador, indexID, id); err != nil {
		return fmt.Errorf("failed to delete jugador: %w", err)
	}

	txn.Commit()
	return nil
}

// Count возвращает количество игроков
func (r *JugadorRepository) Count(context.Context) (int, error) {
	txn := r.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableJugador, indexID)
	if err != nil {
		return 0, fmt.Errorf("failed to count jugadores: %w", err)
	}
	return count(it), nil
}

func findJugador(txn *memdb.Txn, id int64) (*jugadorRecord, error) {
	raw, err := txn.First(tableJugador, indexID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query jugador: %w", err)
	}
	if raw == nil {
		return nil, domain.ErrJugadorNotFound
	}
	return raw.(*jugadorRecord), nil
}

// toDomain собирает игрока и подставляет актуальную команду из той же транзакции
func (j *jugadorRecord) toDomain(txn *memdb.Txn) *domain.Jugador {
	jugador := &domain.Jugador{
		ID:                 domain.Int64Ptr(j.ID),
		NombreJugador:      cloneString(j.NombreJugador),
		CanastasTotales:    j.CanastasTotales,
		AsistenciasTotales: j.AsistenciasTotales,
		RebotesTotales:     j.RebotesTotales,
		Posicion:           cloneString(j.Posicion),
		FechaNacimiento:    cloneDate(j.FechaNacimiento),
	}
	if j.EquipoID != nil {
		if e, err := findEquipo(txn, *j.EquipoID); err == nil {
			jugador.Equipo = e.toDomain()
		}
	}
	return jugador
}

func toJugadores(txn *memdb.Txn, records []*jugadorRecord) []*domain.Jugador {
	jugadores := make([]*domain.Jugador, 0, len(records))
	for _, j := range records {
		jugadores = append(jugadores, j.toDomain(txn))
	}
	return jugadores
}

func cloneDate(d *domain.Date) *domain.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
