package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquipoJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Equipo{ID: Int64Ptr(7), NombreEquipo: StringPtr("AAAAA"), Localidad: StringPtr("BBBBB")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"nombreEquipo":"AAAAA","localidad":"BBBBB"}`, string(data))

	data, err = json.Marshal(Equipo{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"nombreEquipo":null,"localidad":null}`, string(data))
}

func TestEquipoNullFieldsRoundTrip(t *testing.T) {
	var e Equipo
	require.NoError(t, json.Unmarshal([]byte(`{"nombreEquipo":null,"localidad":""}`), &e))
	assert.Nil(t, e.NombreEquipo)
	require.NotNil(t, e.Localidad)
	assert.Equal(t, "", *e.Localidad)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"nombreEquipo":null,"localidad":""}`, string(data))
}

func TestDateJSON(t *testing.T) {
	var j Jugador
	require.NoError(t, json.Unmarshal([]byte(`{"fechaNacimiento":"1994-03-01"}`), &j))
	require.NotNil(t, j.FechaNacimiento)
	assert.Equal(t, NewDate(1994, time.March, 1).Time, j.FechaNacimiento.Time)

	data, err := json.Marshal(j.FechaNacimiento)
	require.NoError(t, err)
	assert.Equal(t, `"1994-03-01"`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`{"fechaNacimiento":"01/03/1994"}`), &j))
}

func TestJugadorEmptyFechaNacimientoIsNull(t *testing.T) {
	for _, payload := range []string{
		`{"nombreJugador":"x","fechaNacimiento":""}`,
		`{"nombreJugador":"x","fechaNacimiento":null}`,
		`{"nombreJugador":"x"}`,
	} {
		var j Jugador
		require.NoError(t, json.Unmarshal([]byte(payload), &j), payload)
		assert.Nil(t, j.FechaNacimiento, payload)
		require.NotNil(t, j.NombreJugador, payload)
		assert.Equal(t, "x", *j.NombreJugador)
	}
}

func TestJugadorUnmarshalKeepsOtherFields(t *testing.T) {
	var j Jugador
	payload := `{"id":3,"canastasTotales":12,"posicion":"base","fechaNacimiento":"2000-01-02","equipo":{"id":9}}`
	require.NoError(t, json.Unmarshal([]byte(payload), &j))

	require.NotNil(t, j.ID)
	assert.Equal(t, int64(3), *j.ID)
	assert.Equal(t, 12, j.CanastasTotales)
	assert.Equal(t, "base", *j.Posicion)
	assert.Nil(t, j.NombreJugador)
	require.NotNil(t, j.FechaNacimiento)
	assert.Equal(t, NewDate(2000, time.January, 2).Time, j.FechaNacimiento.Time)
	require.NotNil(t, j.EquipoID())
	assert.Equal(t, int64(9), *j.EquipoID())
}

func TestJugadorValidate(t *testing.T) {
	assert.NoError(t, (&Jugador{CanastasTotales: 1}).Validate())
	assert.ErrorIs(t, (&Jugador{RebotesTotales: -1}).Validate(), ErrInvalidJugador)
}

func TestMapErrorToCode(t *testing.T) {
	cases := map[error]ErrorCode{
		ErrEquipoNotFound:                          CodeNotFound,
		fmt.Errorf("wrap: %w", ErrJugadorNotFound): CodeNotFound,
		ErrIDExists:                                CodeIDExists,
		ErrUnknownEquipo:                           CodeUnknownEquipo,
		ErrInvalidJugador:                          CodeInvalidJugador,
		ErrInvalidToken:                            CodeUnauthorized,
		fmt.Errorf("boom"):                         CodeInternal,
	}

	for err, want := range cases {
		assert.Equal(t, want, MapErrorToCode(err), err.Error())
	}
}
