package domain

import "errors"

// Доменные ошибки сервиса
var (
	// ErrEquipoNotFound возвращается когда команда не найдена
	ErrEquipoNotFound = errors.New("equipo not found")

	// ErrJugadorNotFound возвращается когда игрок не найден
	ErrJugadorNotFound = errors.New("jugador not found")

	// ErrIDExists возвращается при попытке создать запись с уже заданным ID
	ErrIDExists = errors.New("a new entity cannot already have an id")

	// ErrUnknownEquipo возвращается когда игрок ссылается на несуществующую команду
	ErrUnknownEquipo = errors.New("referenced equipo does not exist")

	// ErrInvalidJugador возвращается при отрицательных счетчиках статистики
	ErrInvalidJugador = errors.New("jugador counters must not be negative")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден
	ErrInvalidToken = errors.New("invalid token")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок API
const (
	CodeNotFound       ErrorCode = "NOT_FOUND"        // Ресурс не найден
	CodeIDExists       ErrorCode = "ID_EXISTS"        // Новая запись не может иметь ID
	CodeUnknownEquipo  ErrorCode = "EQUIPO_NOT_FOUND" // Команда игрока не существует
	CodeInvalidJugador ErrorCode = "INVALID_JUGADOR"  // Некорректные счетчики
	CodeBadRequest     ErrorCode = "BAD_REQUEST"      // Некорректный запрос
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"     // Нет доступа
	CodeInternal       ErrorCode = "INTERNAL_ERROR"   // Внутренняя ошибка
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrEquipoNotFound), errors.Is(err, ErrJugadorNotFound):
		return CodeNotFound
	case errors.Is(err, ErrIDExists):
		return CodeIDExists
	case errors.Is(err, ErrUnknownEquipo):
		return CodeUnknownEquipo
	case errors.Is(err, ErrInvalidJugador):
		return CodeInvalidJugador
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	default:
		return CodeInternal
	}
}
