package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/jugador-equipo/internal/domain"
	"github.com/aidar/jugador-equipo/internal/service"
)

const jugadorEntity = "jugador"

// JugadorHandler обрабатывает эндпоинты игроков
type JugadorHandler struct {
	jugadorService *service.JugadorService
	alerts         *Alerts
}

// NewJugadorHandler создает новый JugadorHandler
func NewJugadorHandler(jugadorService *service.JugadorService, alerts *Alerts) *JugadorHandler {
	return &JugadorHandler{
		jugadorService: jugadorService,
		alerts:         alerts,
	}
}

// Create обрабатывает POST /jugadors
func (h *JugadorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var jugador domain.Jugador
	if err := json.NewDecoder(r.Body).Decode(&jugador); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	if jugador.HasID() {
		h.alerts.Failure(w, jugadorEntity, "idexists")
		HandleError(w, r, domain.ErrIDExists)
		return
	}

	h.create(w, r, &jugador)
}

func (h *JugadorHandler) create(w http.ResponseWriter, r *http.Request, jugador *domain.Jugador) {
	created, err := h.jugadorService.Create(r.Context(), jugador)
	if err != nil {
		h.failure(w, r, err)
		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+formatID(created.ID))
	h.alerts.Created(w, jugadorEntity, *created.ID)
	RespondWithJSON(w, r, http.StatusCreated, created)
}

// Update обрабатывает PUT /jugadors. Запрос без ID создает нового игрока
func (h *JugadorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var jugador domain.Jugador
	if err := json.NewDecoder(r.Body).Decode(&jugador); err != nil {
		RespondBadRequest(w, r, "invalid request body")
		return
	}

	if !jugador.HasID() {
		h.create(w, r, &jugador)
		return
	}

	updated, err := h.jugadorService.Update(r.Context(), &jugador)
	if err != nil {
		h.failure(w, r, err)
		return
	}

	h.alerts.Updated(w, jugadorEntity, *updated.ID)
	RespondWithJSON(w, r, http.StatusOK, updated)
}

// List обрабатывает GET /jugadors[?page=&size=]
func (h *JugadorHandler) List(w http.ResponseWriter, r *http.Request) {
	page, paged, err := parsePage(r)
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	if !paged {
		jugadores, err := h.jugadorService.List(r.Context())
		if err != nil {
			HandleError(w, r, err)
			return
		}
		RespondWithJSON(w, r, http.StatusOK, jugadores)
		return
	}

	jugadores, total, err := h.jugadorService.ListPage(r.Context(), page)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	setPaginationHeaders(w, r, page, total)
	RespondWithJSON(w, r, http.StatusOK, jugadores)
}

// Get обрабатывает GET /jugadors/{id}
func (h *JugadorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	jugador, err := h.jugadorService.Get(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, jugador)
}

// Delete обрабатывает DELETE /jugadors/{id}
func (h *JugadorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	if err := h.jugadorService.Delete(r.Context(), id); err != nil {
		HandleError(w, r, err)
		return
	}

	h.alerts.Deleted(w, jugadorEntity, id)
	w.WriteHeader(http.StatusOK)
}

// TopScorers обрабатывает GET /jugadors/canastas/{canastas}
func (h *JugadorHandler) TopScorers(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "canastas")
	minCanastas, err := strconv.Atoi(raw)
	if err != nil || minCanastas < 0 {
		RespondBadRequest(w, r, "canastas must be a non-negative integer")
		return
	}

	jugadores, err := h.jugadorService.TopScorers(r.Context(), minCanastas)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, jugadores)
}

// ListByEquipo обрабатывает GET /equipos/{id}/jugadors
func (h *JugadorHandler) ListByEquipo(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondBadRequest(w, r, err.Error())
		return
	}

	jugadores, err := h.jugadorService.ByEquipo(r.Context(), id)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, jugadores)
}

// failure дополняет ошибки валидации заголовком X-<app>-error
func (h *JugadorHandler) failure(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.MapErrorToCode(err) {
	case domain.CodeUnknownEquipo:
		h.alerts.Failure(w, jugadorEntity, "equiponotfound")
	case domain.CodeInvalidJugador:
		h.alerts.Failure(w, jugadorEntity, "invalidcounters")
	}
	HandleError(w, r, err)
}
