package repository

import (
	"context"

	"github.com/aidar/jugador-equipo/internal/domain"
)

// Page описывает запрошенную страницу списка (нумерация с нуля)
type Page struct {
	Number int
	Size   int
}

// Offset возвращает смещение первой записи страницы
func (p Page) Offset() int {
	return p.Number * p.Size
}

// EquipoRepository определяет методы для работы с данными команд
type EquipoRepository interface {
	// FindAll возвращает все команды, упорядоченные по ID
	FindAll(ctx context.Context) ([]*domain.Equipo, error)

	// FindPage возвращает одну страницу команд, упорядоченных по ID
	FindPage(ctx context.Context, page Page) ([]*domain.Equipo, error)

	// FindByID получает команду по ID
	FindByID(ctx context.Context, id int64) (*domain.Equipo, error)

	// Save создает команду (если ID пустой) или обновляет существующую
	Save(ctx context.Context, equipo *domain.Equipo) (*domain.Equipo, error)

	// DeleteByID удаляет команду, отсутствие записи не считается ошибкой
	DeleteByID(ctx context.Context, id int64) error

	// Count возвращает количество команд
	Count(ctx context.Context) (int, error)
}

// JugadorRepository определяет методы для работы с данными игроков
type JugadorRepository interface {
	// FindAll возвращает всех игроков, упорядоченных по ID
	FindAll(ctx context.Context) ([]*domain.Jugador, error)

	// FindPage возвращает одну страницу игроков, упорядоченных по ID
	FindPage(ctx context.Context, page Page) ([]*domain.Jugador, error)

	// FindByID получает игрока по ID вместе с его командой
	FindByID(ctx context.Context, id int64) (*domain.Jugador, error)

	// FindByCanastasAtLeast возвращает игроков с canastasTotales >= min
	FindByCanastasAtLeast(ctx context.Context, min int) ([]*domain.Jugador, error)

	// FindByEquipo возвращает игроков команды
	FindByEquipo(ctx context.Context, equipoID int64) ([]*domain.Jugador, error)

	// Save создает игрока (если ID пустой) или обновляет существующего
	Save(ctx context.Context, jugador *domain.Jugador) (*domain.Jugador, error)

	// DeleteByID удаляет игрока, отсутствие записи не считается ошибкой
	DeleteByID(ctx context.Context, id int64) error

	// Count возвращает количество игроков
	Count(ctx context.Context) (int, error)
}

// StatsRepository определяет агрегирующие запросы
type StatsRepository interface {
	// EquipoStats возвращает показатели по каждой команде, упорядоченные по ID
	EquipoStats(ctx context.Context) ([]domain.EquipoStats, error)
}

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}
