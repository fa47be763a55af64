package adaptor

import (
	"movie-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie *MovieHandler
	Actor *ActorHandler
	Genre *GenreHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie: NewMovieHandler(service.Movie, log),
		Actor: NewActorHandler(service.Actor, log),
		Genre: NewGenreHandler(service.Genre, log),
	}
}
