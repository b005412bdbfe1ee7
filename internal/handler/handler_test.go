package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/aidar/jugador-equipo/internal/repository/memory"
	"github.com/aidar/jugador-equipo/internal/service"
)

const testAppName = "jugadorEquipoApp"

// testEnv собирает роутер поверх хранилища в памяти
type testEnv struct {
	store  *memory.Store
	router chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	alerts := NewAlerts(testAppName)
	equipoHandler := NewEquipoHandler(service.NewEquipoService(store.Equipos()), alerts)
	jugadorHandler := NewJugadorHandler(service.NewJugadorService(store.Jugadores(), store.Equipos()), alerts)
	statsHandler := NewStatsHandler(service.NewStatsService(store, store.Equipos(), store.Jugadores()))

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/equipos", equipoHandler.Create)
		r.Put("/equipos", equipoHandler.Update)
		r.Get("/equipos", equipoHandler.List)
		r.Get("/equipos/{id}", equipoHandler.Get)
		r.Delete("/equipos/{id}", equipoHandler.Delete)
		r.Get("/equipos/{id}/jugadors", jugadorHandler.ListByEquipo)

		r.Post("/jugadors", jugadorHandler.Create)
		r.Put("/jugadors", jugadorHandler.Update)
		r.Get("/jugadors", jugadorHandler.List)
		r.Get("/jugadors/canastas/{canastas}", jugadorHandler.TopScorers)
		r.Get("/jugadors/{id}", jugadorHandler.Get)
		r.Delete("/jugadors/{id}", jugadorHandler.Delete)

		r.Get("/stats/equipos", statsHandler.GetStats)
	})

	return &testEnv{store: store, router: r}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			payload, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) equipoCount(t *testing.T) int {
	t.Helper()
	n, err := e.store.Equipos().Count(context.Background())
	require.NoError(t, err)
	return n
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v), "body: %s", rr.Body.String())
	return v
}
