package domain

// Equipo представляет команду и ее населенный пункт
type Equipo struct {
	ID           *int64  `json:"id"`
	NombreEquipo *string `json:"nombreEquipo"`
	Localidad    *string `json:"localidad"`
}

// HasID возвращает true если запись уже получила идентификатор
func (e *Equipo) HasID() bool {
	return e.ID != nil
}

// EquipoStats представляет агрегированные показатели одной команды
type EquipoStats struct {
	EquipoID       int64   `json:"equipoId"`
	NombreEquipo   *string `json:"nombreEquipo"`
	TotalJugadores int     `json:"totalJugadores"`
	TotalCanastas  int     `json:"totalCanastas"`
}

// Int64Ptr возвращает указатель на копию значения
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr возвращает указатель на копию строки
func StringPtr(v string) *string {
	return &v
}
