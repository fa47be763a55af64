package adaptor

import (
	"net/http"

	"movie-api/internal/dto/request"
	"movie-api/internal/usecase"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

type ActorHandler struct {
	service usecase.ActorService
	log     *zap.Logger
}

func NewActorHandler(service usecase.ActorService, log *zap.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		log:     log.With(zap.String("handler", "actor")),
	}
}

// GetActors handles GET /api/actors?name=
func (h *ActorHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	name := stringParam(r.URL.Query(), "name")

	actors, err := h.service.GetActors(r.Context(), name)
	if err != nil {
		handleServiceError(w, h.log, err, "get actors")
		return
	}

	utils.ResponseSuccess(w, "success", actors)
}

// GetActorByID handles GET /api/actors/{id}
func (h *ActorHandler) GetActorByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "get actor by ID")
		return
	}

	actor, err := h.service.GetActorByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get actor by ID")
		return
	}

	utils.ResponseSuccess(w, "Actor retrieved successfully", actor)
}

// CreateActor handles POST /api/actors
func (h *ActorHandler) CreateActor(w http.ResponseWriter, r *http.Request) {
	var req request.ActorRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, h.log, err, "create actor")
		return
	}

	actor, err := h.service.CreateActor(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create actor")
		return
	}

	utils.ResponseCreated(w, "Actor created successfully", actor)
}

// PatchActor handles PATCH /api/actors/{id}
func (h *ActorHandler) PatchActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "patch actor")
		return
	}

	var patch request.Patch
	if err := decodeJSON(r, &patch); err != nil {
		handleServiceError(w, h.log, err, "patch actor")
		return
	}

	actor, err := h.service.PatchActor(r.Context(), id, patch)
	if err != nil {
		handleServiceError(w, h.log, err, "patch actor")
		return
	}

	utils.ResponseSuccess(w, "Actor updated successfully", actor)
}

// DeleteActor handles DELETE /api/actors/{id}?force=
func (h *ActorHandler) DeleteActor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleServiceError(w, h.log, err, "delete actor")
		return
	}

	force := request.ParseForceFlag(r.URL.Query())
	if err := h.service.DeleteActor(r.Context(), id, force); err != nil {
		handleServiceError(w, h.log, err, "delete actor")
		return
	}

	utils.ResponseNoContent(w)
}
