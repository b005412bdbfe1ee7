package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// dateLayout формат даты рождения в JSON (ISO 8601 без времени)
const dateLayout = "2006-01-02"

// Jugador представляет игрока, который может состоять в команде
type Jugador struct {
	ID                 *int64  `json:"id"`
	NombreJugador      *string `json:"nombreJugador"`
	CanastasTotales    int     `json:"canastasTotales"`
	AsistenciasTotales int     `json:"asistenciasTotales"`
	RebotesTotales     int     `json:"rebotesTotales"`
	Posicion           *string `json:"posicion"`
	FechaNacimiento    *Date   `json:"fechaNacimiento"`
	Equipo             *Equipo `json:"equipo"`
}

// HasID возвращает true если запись уже получила идентификатор
func (j *Jugador) HasID() bool {
	return j.ID != nil
}

// EquipoID возвращает ID команды игрока или nil если игрок без команды
func (j *Jugador) EquipoID() *int64 {
	if j.Equipo == nil {
		return nil
	}
	return j.Equipo.ID
}

// UnmarshalJSON реализует json.Unmarshaler. Пустая строка в fechaNacimiento
// означает отсутствие даты, как и null
func (j *Jugador) UnmarshalJSON(data []byte) error {
	type jugadorFields Jugador
	aux := struct {
		*jugadorFields
		FechaNacimiento json.RawMessage `json:"fechaNacimiento"`
	}{jugadorFields: (*jugadorFields)(j)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	j.FechaNacimiento = nil
	switch strings.TrimSpace(string(aux.FechaNacimiento)) {
	case "", "null", `""`:
		return nil
	}

	var fecha Date
	if err := json.Unmarshal(aux.FechaNacimiento, &fecha); err != nil {
		return err
	}
	j.FechaNacimiento = &fecha
	return nil
}

// Validate проверяет что счетчики статистики не отрицательные
func (j *Jugador) Validate() error {
	if j.CanastasTotales < 0 || j.AsistenciasTotales < 0 || j.RebotesTotales < 0 {
		return ErrInvalidJugador
	}
	return nil
}

// Date дата без времени, сериализуется как "YYYY-MM-DD"
type Date struct {
	time.Time
}

// NewDate создает Date из компонентов
func NewDate(year int, month time.Month, day int) *Date {
	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON реализует json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON реализует json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		return fmt.Errorf("empty date")
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}
