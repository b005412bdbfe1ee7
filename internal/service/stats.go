package service

import (
	"context"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

// Summary represents overall record counts
type Summary struct {
	TotalEquipos   int `json:"totalEquipos"`
	TotalJugadores int `json:"totalJugadores"`
}

// Stats represents combined statistics
type Stats struct {
	Equipos []domain.EquipoStats `json:"equipos"`
	Summary Summary              `json:"summary"`
}

// StatsService handles statistics queries
type StatsService struct {
	statsRepo   repository.StatsRepository
	equipoRepo  repository.EquipoRepository
	jugadorRepo repository.JugadorRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, equipoRepo repository.EquipoRepository, jugadorRepo repository.JugadorRepository) *StatsService {
	return &StatsService{
		statsRepo:   statsRepo,
		equipoRepo:  equipoRepo,
		jugadorRepo: jugadorRepo,
	}
}

// GetStats returns per-equipo aggregates and the overall summary
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	equipos, err := s.statsRepo.EquipoStats(ctx)
	if err != nil {
		return nil, err
	}

	totalEquipos, err := s.equipoRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalJugadores, err := s.jugadorRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Equipos: equipos,
		Summary: Summary{
			TotalEquipos:   totalEquipos,
			TotalJugadores: totalJugadores,
		},
	}, nil
}
