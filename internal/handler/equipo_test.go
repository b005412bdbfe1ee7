package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/jugador-equipo/internal/domain"
)

const (
	defaultNombreEquipo = "AAAAA"
	updatedNombreEquipo = "BBBBB"
	defaultLocalidad    = "AAAAA"
	updatedLocalidad    = "BBBBB"
)

func newEquipo() *domain.Equipo {
	return &domain.Equipo{NombreEquipo: domain.StringPtr(defaultNombreEquipo), Localidad: domain.StringPtr(defaultLocalidad)}
}

func TestCreateEquipo(t *testing.T) {
	env := newTestEnv(t)
	before := env.equipoCount(t)

	rr := env.do(t, http.MethodPost, "/api/equipos", newEquipo())
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	created := decode[domain.Equipo](t, rr)
	require.NotNil(t, created.ID)
	assert.Equal(t, fmt.Sprintf("/api/equipos/%d", *created.ID), rr.Header().Get("Location"))
	assert.Equal(t, "jugadorEquipoApp.equipo.created", rr.Header().Get("X-jugadorEquipoApp-alert"))
	assert.Equal(t, fmt.Sprint(*created.ID), rr.Header().Get("X-jugadorEquipoApp-params"))

	// Проверяем состояние хранилища
	equipos, err := env.store.Equipos().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, equipos, before+1)
	last := equipos[len(equipos)-1]
	assert.Equal(t, defaultNombreEquipo, *last.NombreEquipo)
	assert.Equal(t, defaultLocalidad, *last.Localidad)
}

func TestCreateEquipoWithExistingID(t *testing.T) {
	env := newTestEnv(t)

	equipo := newEquipo()
	equipo.ID = domain.Int64Ptr(1)
	rr := env.do(t, http.MethodPost, "/api/equipos", equipo)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "error.idexists", rr.Header().Get("X-jugadorEquipoApp-error"))
	assert.Equal(t, 0, env.equipoCount(t))
}

func TestCreateEquipoMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/equipos", `{"nombreEquipo":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := decode[ErrorResponse](t, rr)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}

func TestGetAllEquipos(t *testing.T) {
	env := newTestEnv(t)
	saved, err := env.store.Equipos().Save(context.Background(), newEquipo())
	require.NoError(t, err)

	rr := env.do(t, http.MethodGet, "/api/equipos", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	require.NotEmpty(t, raw)

	found := false
	for _, item := range raw {
		if item["id"] == float64(*saved.ID) {
			found = true
			assert.Equal(t, defaultNombreEquipo, item["nombreEquipo"])
			assert.Equal(t, defaultLocalidad, item["localidad"])
		}
	}
	assert.True(t, found, "created equipo must be listed")
	assert.Empty(t, rr.Header().Get("X-Total-Count"), "unpaged list has no paging headers")
}

func TestGetAllEquiposPaged(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 5; i++ {
		_, err := env.store.Equipos().Save(context.Background(), newEquipo())
		require.NoError(t, err)
	}

	rr := env.do(t, http.MethodGet, "/api/equipos?page=1&size=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	page := decode[[]domain.Equipo](t, rr)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), *page[0].ID)
	assert.Equal(t, "5", rr.Header().Get("X-Total-Count"))

	link := rr.Header().Get("Link")
	assert.Contains(t, link, `</api/equipos?page=2&size=2>; rel="next"`)
	assert.Contains(t, link, `</api/equipos?page=0&size=2>; rel="prev"`)
	assert.Contains(t, link, `</api/equipos?page=2&size=2>; rel="last"`)
	assert.Contains(t, link, `</api/equipos?page=0&size=2>; rel="first"`)

	rr = env.do(t, http.MethodGet, "/api/equipos?size=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAllEquiposPageOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.store.Equipos().Save(context.Background(), newEquipo())
	require.NoError(t, err)

	// page*size не помещается в int
	rr := env.do(t, http.MethodGet, "/api/equipos?page=4611686018427387904&size=2", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/jugadors?page=9223372036854775807&size=1000", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Далекая, но допустимая страница просто пустая
	rr = env.do(t, http.MethodGet, "/api/equipos?page=1000000&size=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[[]domain.Equipo](t, rr))
	assert.Equal(t, "1", rr.Header().Get("X-Total-Count"))
}

func TestGetEquipo(t *testing.T) {
	env := newTestEnv(t)
	saved, err := env.store.Equipos().Save(context.Background(), newEquipo())
	require.NoError(t, err)

	rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/equipos/%d", *saved.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	got := decode[domain.Equipo](t, rr)
	assert.Equal(t, *saved.ID, *got.ID)
	assert.Equal(t, defaultNombreEquipo, *got.NombreEquipo)
	assert.Equal(t, defaultLocalidad, *got.Localidad)
}

func TestGetNonExistingEquipo(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, fmt.Sprintf("/api/equipos/%d", int64(math.MaxInt64)), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/equipos/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateEquipo(t *testing.T) {
	env := newTestEnv(t)
	saved, err := env.store.Equipos().Save(context.Background(), newEquipo())
	require.NoError(t, err)
	before := env.equipoCount(t)

	saved.NombreEquipo = domain.StringPtr(updatedNombreEquipo)
	saved.Localidad = domain.StringPtr(updatedLocalidad)
	rr := env.do(t, http.MethodPut, "/api/equipos", saved)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "jugadorEquipoApp.equipo.updated", rr.Header().Get("X-jugadorEquipoApp-alert"))

	assert.Equal(t, before, env.equipoCount(t))
	got, err := env.store.Equipos().FindByID(context.Background(), *saved.ID)
	require.NoError(t, err)
	assert.Equal(t, updatedNombreEquipo, *got.NombreEquipo)
	assert.Equal(t, updatedLocalidad, *got.Localidad)
}

func TestUpdateEquipoWithoutIDCreates(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPut, "/api/equipos", newEquipo())
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 1, env.equipoCount(t))
}

func TestUpdateNonExistingEquipo(t *testing.T) {
	env := newTestEnv(t)

	equipo := newEquipo()
	equipo.ID = domain.Int64Ptr(math.MaxInt64)
	rr := env.do(t, http.MethodPut, "/api/equipos", equipo)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 0, env.equipoCount(t))
}

func TestDeleteEquipo(t *testing.T) {
	env := newTestEnv(t)
	saved, err := env.store.Equipos().Save(context.Background(), newEquipo())
	require.NoError(t, err)
	before := env.equipoCount(t)

	rr := env.do(t, http.MethodDelete, fmt.Sprintf("/api/equipos/%d", *saved.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "jugadorEquipoApp.equipo.deleted", rr.Header().Get("X-jugadorEquipoApp-alert"))
	assert.Equal(t, before-1, env.equipoCount(t))

	list := decode[[]domain.Equipo](t, env.do(t, http.MethodGet, "/api/equipos", nil))
	for _, e := range list {
		assert.NotEqual(t, *saved.ID, *e.ID)
	}

	// Повторное удаление не является ошибкой
	rr = env.do(t, http.MethodDelete, fmt.Sprintf("/api/equipos/%d", *saved.ID), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCreateEquipoKeepsNullFields(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/equipos", `{"nombreEquipo":null,"localidad":null}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":1,"nombreEquipo":null,"localidad":null}`, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/equipos/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":1,"nombreEquipo":null,"localidad":null}`, rr.Body.String())
}
