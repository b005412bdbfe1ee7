// Package memory реализует репозитории поверх go-memdb.
// Команды и игроки живут в одной базе, поэтому ссылка игрока на команду
// проверяется и обнуляется так же, как внешний ключ в PostgreSQL
package memory

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/hashicorp/go-memdb"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

// Имена таблиц и индексов memdb
const (
	tableEquipo   = "equipo"
	tableJugador  = "jugador"
	tableSequence = "sequence"

	indexID       = "id"
	indexEquipo   = "equipo"
	indexCanastas = "canastas"
)

// equipoRecord строка таблицы equipo. Записи не меняются после вставки
type equipoRecord struct {
	ID           int64
	NombreEquipo *string
	Localidad    *string
}

// jugadorRecord строка таблицы jugador, команда хранится только ссылкой
type jugadorRecord struct {
	ID                 int64
	NombreJugador      *string
	CanastasTotales    int
	AsistenciasTotales int
	RebotesTotales     int
	Posicion           *string
	FechaNacimiento    *domain.Date
	EquipoID           *int64
}

// sequence хранит следующий ID таблицы, ID не переиспользуются
type sequence struct {
	Table string
	Next  int64
}

// int64Index индексирует целое поле в порядке возрастания значений.
// Встроенные IntFieldIndex кодируют varint и не сохраняют порядок
type int64Index func(obj interface{}) (int64, bool)

// FromObject реализует memdb.SingleIndexer
func (f int64Index) FromObject(obj interface{}) (bool, []byte, error) {
	v, ok := f(obj)
	if !ok {
		return false, nil, nil
	}
	return true, encodeInt64(v), nil
}

// FromArgs реализует memdb.Indexer
func (f int64Index) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("must provide only a single argument")
	}
	switch v := args[0].(type) {
	case int64:
		return encodeInt64(v), nil
	case int:
		return encodeInt64(int64(v)), nil
	default:
		return nil, fmt.Errorf("argument must be an int64: %#v", args[0])
	}
}

// encodeInt64 big-endian со сдвигом знака: байтовый порядок совпадает с числовым
func encodeInt64(v int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v)^(1<<63))
	return buf
}

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableEquipo: {
				Name: tableEquipo,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:   indexID,
						Unique: true,
						Indexer: int64Index(func(obj interface{}) (int64, bool) {
							return obj.(*equipoRecord).ID, true
						}),
					},
				},
			},
			tableJugador: {
				Name: tableJugador,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:   indexID,
						Unique: true,
						Indexer: int64Index(func(obj interface{}) (int64, bool) {
							return obj.(*jugadorRecord).ID, true
						}),
					},
					indexEquipo: {
						Name:         indexEquipo,
						AllowMissing: true,
						Indexer: int64Index(func(obj interface{}) (int64, bool) {
							j := obj.(*jugadorRecord)
							if j.EquipoID == nil {
								return 0, false
							}
							return *j.EquipoID, true
						}),
					},
					indexCanastas: {
						Name: indexCanastas,
						Indexer: int64Index(func(obj interface{}) (int64, bool) {
							return int64(obj.(*jugadorRecord).CanastasTotales), true
						}),
					},
				},
			},
			tableSequence: {
				Name: tableSequence,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Table"},
					},
				},
			},
		},
	}
}

// Store хранилище в памяти с транзакциями memdb
type Store struct {
	db *memdb.MemDB
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		panic(fmt.Sprintf("memory: invalid schema: %v", err))
	}
	return &Store{db: db}
}

// Equipos возвращает репозиторий команд поверх хранилища
func (s *Store) Equipos() *EquipoRepository {
	return &EquipoRepository{db: s.db}
}

// Jugadores возвращает репозиторий игроков поверх хранилища
func (s *Store) Jugadores() *JugadorRepository {
	return &JugadorRepository{db: s.db}
}

// Ping всегда успешен
func (s *Store) Ping(context.Context) error {
	return nil
}

// EquipoStats считает игроков и канасты по каждой команде, упорядочено по ID
func (s *Store) EquipoStats(context.Context) ([]domain.EquipoStats, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableEquipo, indexID)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipos: %w", err)
	}

	stats := make([]domain.EquipoStats, 0)
	for _, e := range collect[equipoRecord](it) {
		st := domain.EquipoStats{EquipoID: e.ID, NombreEquipo: cloneString(e.NombreEquipo)}

		jit, err := txn.Get(tableJugador, indexEquipo, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to query jugadores: %w", err)
		}
		for _, j := range collect[jugadorRecord](jit) {
			st.TotalJugadores++
			st.TotalCanastas += j.CanastasTotales
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// nextID выдает следующий ID таблицы внутри пишущей транзакции
func nextID(txn *memdb.Txn, table string) (int64, error) {
	raw, err := txn.First(tableSequence, indexID, table)
	if err != nil {
		return 0, err
	}

	next := int64(1)
	if raw != nil {
		next = raw.(*sequence).Next
	}
	if err := txn.Insert(tableSequence, &sequence{Table: table, Next: next + 1}); err != nil {
		return 0, err
	}
	return next, nil
}

func collect[T any](it memdb.ResultIterator) []*T {
	items := make([]*T, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		items = append(items, obj.(*T))
	}
	return items
}

// paginate пропускает Offset записей итератора и берет не больше Size
func paginate[T any](it memdb.ResultIterator, page repository.Page) []*T {
	items := make([]*T, 0)
	offset := page.Offset()
	if page.Size <= 0 || offset < 0 {
		return items
	}

	for obj := it.Next(); obj != nil && len(items) < page.Size; obj = it.Next() {
		if offset > 0 {
			offset--
			continue
		}
		items = append(items, obj.(*T))
	}
	return items
}

func count(it memdb.ResultIterator) int {
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var (
	_ repository.EquipoRepository  = (*EquipoRepository)(nil)
	_ repository.JugadorRepository = (*JugadorRepository)(nil)
	_ repository.StatsRepository   = (*Store)(nil)
	_ repository.Pinger            = (*Store)(nil)
)
