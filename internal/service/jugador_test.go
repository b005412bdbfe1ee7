package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository/memory"
)

func newJugadorService() (*JugadorService, *EquipoService) {
	store := memory.NewStore()
	return NewJugadorService(store.Jugadores(), store.Equipos()), NewEquipoService(store.Equipos())
}

func TestJugadorServiceValidatesCounters(t *testing.T) {
	svc, _ := newJugadorService()

	_, err := svc.Create(context.Background(), &domain.Jugador{CanastasTotales: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidJugador)
}

func TestJugadorServiceIgnoresNestedEquipoFields(t *testing.T) {
	ctx := context.Background()
	svc, equipos := newJugadorService()

	equipo, err := equipos.Create(ctx, &domain.Equipo{NombreEquipo: domain.StringPtr("Bulls"), Localidad: domain.StringPtr("Chicago")})
	require.NoError(t, err)

	jugador, err := svc.Create(ctx, &domain.Jugador{
		NombreJugador: domain.StringPtr("Jordan"),
		Equipo:        &domain.Equipo{ID: equipo.ID, NombreEquipo: domain.StringPtr("ignored")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bulls", *jugador.Equipo.NombreEquipo)
}

func TestJugadorServiceByEquipo(t *testing.T) {
	ctx := context.Background()
	svc, equipos := newJugadorService()

	_, err := svc.ByEquipo(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrEquipoNotFound)

	equipo, err := equipos.Create(ctx, &domain.Equipo{NombreEquipo: domain.StringPtr("Bulls")})
	require.NoError(t, err)

	list, err := svc.ByEquipo(ctx, *equipo.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, &domain.Jugador{Equipo: &domain.Equipo{ID: equipo.ID}})
	require.NoError(t, err)

	list, err = svc.ByEquipo(ctx, *equipo.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStatsService(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	jugadores := NewJugadorService(store.Jugadores(), store.Equipos())
	equipos := NewEquipoService(store.Equipos())
	stats := NewStatsService(store, store.Equipos(), store.Jugadores())

	equipo, err := equipos.Create(ctx, &domain.Equipo{NombreEquipo: domain.StringPtr("Spurs")})
	require.NoError(t, err)
	_, err = jugadores.Create(ctx, &domain.Jugador{CanastasTotales: 9, Equipo: &domain.Equipo{ID: equipo.ID}})
	require.NoError(t, err)
	_, err = jugadores.Create(ctx, &domain.Jugador{CanastasTotales: 2})
	require.NoError(t, err)

	got, err := stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{TotalEquipos: 1, TotalJugadores: 2}, got.Summary)
	require.Len(t, got.Equipos, 1)
	assert.Equal(t, 9, got.Equipos[0].TotalCanastas)
}
