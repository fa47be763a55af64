package response

import "movie-api/internal/data/entity"

type ActorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
}

func ActorToResponse(actor *entity.Actor) ActorResponse {
	return ActorResponse{
		ID:        actor.ID,
		Name:      actor.Name,
		BirthDate: actor.BirthDate.Format(entity.DateLayout),
	}
}

func ActorsToResponse(actors []*entity.Actor) []ActorResponse {
	out := make([]ActorResponse, len(actors))
	for i, actor := range actors {
		out[i] = ActorToResponse(actor)
	}
	return out
}
