package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/service"
)

const equipoEntity = "equipo"

// EquipoHandler обрабатывает эндпоинты команд
type EquipoHandler struct {
	equipoService *service.EquipoService
	alerts        *Alerts
}

// NewEquipoHandler создает новый EquipoHandler
func NewEquipoHandler(equipoService *service.EquipoService, alerts *Alerts) *EquipoHandler {
	return &EquipoHandler{
		equipoService: equipoService,
		alerts:        alerts,
	}
}

// Create обрабатывает POST /equipos
func (h *EquipoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var equipo domain.Equipo
	if err := json.NewDecoder(r.Body).Decode(&equipo); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	// Новая команда не может иметь ID
	if equipo.HasID() {
		h.alerts.Failure(w, equipoEntity, "idexists")
		HandleError(w, r, domain.ErrIDExists)
		return
	}

	h.create(w, r, &equipo)
}

func (h *EquipoHandler) create(w http.ResponseWriter, r *http.Request, equipo *domain.Equipo) {
	created, err := h.equipoService.Create(r.Context(), equipo)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+formatID(created.ID))
	h.alerts.Created(w, equipoEntity, *created.ID)
	RespondWithJSON(w, r, http.StatusCreated, created)
}

// Update обрабатывает PUT /equipos. Запрос без ID создает новую команду
func (h *EquipoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var equipo domain.Equipo
	if err := json.NewDecoder(r.Body).Decode(&equipo); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	if !equipo.HasID() {
		h.create(w, r, &equipo)
		return
	}

	updated, err := h.equipoService.Update(r.Context(), &equipo)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	h.alerts.Updated(w, equipoEntity, *updated.ID)
	RespondWithJSON(w, r, http.StatusOK, updated)
}

// List обрабатывает GET /equipos[?page=&size=]
func (h *EquipoHandler) List(w http.ResponseWriter, r *http.Request) {
	page, paged, err := parsePage(r)
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	if !paged {
		equipos, err := h.equipoService.List(r.Context())
		if err != nil {
			HandleError(w, r, err)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, equipos)
		return
	}

	equipos, total, err := h.equipoService.ListPage(r.Context(), page)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	setPaginationHeaders(w, r, page, total)
	RespondWithJSON(w, r, http.StatusOK, equipos)
}

// Get обрабатывает GET /equipos/{id}
func (h *EquipoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	equipo, err := h.equipoService.Get(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, equipo)
}

// Delete обрабатывает DELETE /equipos/{id}. Удаление отсутствующей команды возвращает 200
func (h *EquipoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	if err := h.equipoService.Delete(r.Context(), id); err != nil {
		HandleError(w, r, err)
		return
	}

	h.alerts.Deleted(w, equipoEntity, id)
	w.WriteHeader(http.StatusOK)
}
