package service

import (
	"context"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

// JugadorService handles business logic for jugadores
type JugadorService struct {
	jugadorRepo repository.JugadorRepository
	equipoRepo  repository.EquipoRepository
}

// NewJugadorService creates a new JugadorService
func NewJugadorService(jugadorRepo repository.JugadorRepository, equipoRepo repository.EquipoRepository) *JugadorService {
	return &JugadorService{
		jugadorRepo: jugadorRepo,
		equipoRepo:  equipoRepo,
	}
}

// Create stores a new jugador
func (s *JugadorService) Create(ctx context.Context, jugador *domain.Jugador) (*domain.Jugador, error) {
	if jugador.HasID() {
		return nil, domain.ErrIDExists
	}
	return s.save(ctx, jugador)
}

// Update replaces all fields of an existing jugador except its id
func (s *JugadorService) Update(ctx context.Context, jugador *domain.Jugador) (*domain.Jugador, error) {
	if !jugador.HasID() {
		return nil, domain.ErrJugadorNotFound
	}
	return s.save(ctx, jugador)
}

func (s *JugadorService) save(ctx context.Context, jugador *domain.Jugador) (*domain.Jugador, error) {
	if err := jugador.Validate(); err != nil {
		return nil, err
	}

	// Only the equipo reference is persisted; its other fields are ignored
	if id := jugador.EquipoID(); id != nil {
		jugador.Equipo = &domain.Equipo{ID: id}
	} else {
		jugador.Equipo = nil
	}

	return s.jugadorRepo.Save(ctx, jugador)
}

// List returns all jugadores ordered by id
func (s *JugadorService) List(ctx context.Context) ([]*domain.Jugador, error) {
	return s.jugadorRepo.FindAll(ctx)
}

// ListPage returns one page of jugadores together with the total count
func (s *JugadorService) ListPage(ctx context.Context, page repository.Page) ([]*domain.Jugador, int, error) {
	total, err := s.jugadorRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	jugadores, err := s.jugadorRepo.FindPage(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	return jugadores, total, nil
}

// Get retrieves a jugador by id
func (s *JugadorService) Get(ctx context.Context, id int64) (*domain.Jugador, error) {
	return s.jugadorRepo.FindByID(ctx, id)
}

// Delete removes a jugador; deleting a missing id is not an error
func (s *JugadorService) Delete(ctx context.Context, id int64) error {
	return s.jugadorRepo.DeleteByID(ctx, id)
}

// TopScorers returns jugadores with at least minCanastas baskets, best first
func (s *JugadorService) TopScorers(ctx context.Context, minCanastas int) ([]*domain.Jugador, error) {
	return s.jugadorRepo.FindByCanastasAtLeast(ctx, minCanastas)
}

// ByEquipo returns the jugadores of an existing equipo
func (s *JugadorService) ByEquipo(ctx context.Context, equipoID int64) ([]*domain.Jugador, error) {
	// Check the equipo exists so an unknown id yields not found instead of an empty list
	if _, err := s.equipoRepo.FindByID(ctx, equipoID); err != nil {
		return nil, err
	}
	return s.jugadorRepo.FindByEquipo(ctx, equipoID)
}
