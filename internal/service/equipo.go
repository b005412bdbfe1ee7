package service

import (
	"context"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/repository"
)

// EquipoService handles business logic for equipos
type EquipoService struct {
	equipoRepo repository.EquipoRepository
}

// NewEquipoService creates a new EquipoService
func NewEquipoService(equipoRepo repository.EquipoRepository) *EquipoService {
	return &EquipoService{
		equipoRepo: equipoRepo,
	}
}

// Create stores a new equipo; the id is always assigned by the store
func (s *EquipoService) Create(ctx context.Context, equipo *domain.Equipo) (*domain.Equipo, error) {
	if equipo.HasID() {
		return nil, domain.ErrIDExists
	}
	return s.equipoRepo.Save(ctx, equipo)
}

// Update replaces all fields of an existing equipo except its id
func (s *EquipoService) Update(ctx context.Context, equipo *domain.Equipo) (*domain.Equipo, error) {
	if !equipo.HasID() {
		return nil, domain.ErrEquipoNotFound
	}
	return s.equipoRepo.Save(ctx, equipo)
}

// List returns all equipos ordered by id
func (s *EquipoService) List(ctx context.Context) ([]*domain.Equipo, error) {
	return s.equipoRepo.FindAll(ctx)
}

// ListPage returns one page of equipos together with the total count
func (s *EquipoService) ListPage(ctx context.Context, page repository.Page) ([]*domain.Equipo, int, error) {
	total, err := s.equipoRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	equipos, err := s.equipoRepo.FindPage(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	return equipos, total, nil
}

// Get retrieves an equipo by id
func (s *EquipoService) Get(ctx context.Context, id int64) (*domain.Equipo, error) {
	return s.equipoRepo.FindByID(ctx, id)
}

// Delete removes an equipo; deleting a missing id is not an error
func (s *EquipoService) Delete(ctx context.Context, id int64) error {
	return s.equipoRepo.DeleteByID(ctx, id)
}
