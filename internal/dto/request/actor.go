package request

type ActorRequest struct {
	Name      string `json:"name" validate:"notblank"`
	BirthDate *Date  `json:"birthDate" validate:"required"`
}

func (ActorRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name":      "Actor name is required",
		"birthDate": "Actor birthDate cannot be null",
	}
}
