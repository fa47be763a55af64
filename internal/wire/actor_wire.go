package wire

import (
	"movie-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireActor(r chi.Router, actorHandler *adaptor.ActorHandler) {
	r.Route("/api/actors", func(r chi.Router) {
		r.Get("/", actorHandler.GetActors) // GET /api/actors?name=
		r.Get("/{id}", actorHandler.GetActorByID)

		r.Post("/", actorHandler.CreateActor)
		r.Patch("/{id}", actorHandler.PatchActor)
		r.Delete("/{id}", actorHandler.DeleteActor) // DELETE /api/actors/{id}?force=true
	})
}
