package request

type GenreRequest struct {
	Name string `json:"name" validate:"notblank"`
}

func (GenreRequest) ValidationMessages() map[string]string {
	return map[string]string{"name": "Genre name is required"}
}
