package adaptor

import (
	"net/http"
	"net/url"

	"movie-api/pkg/apperror"
	"movie-api/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func invalidParam(name, value string) error {
	return apperror.InvalidArgument("Invalid parameter '%s' with value '%s'", name, value)
}

// pathID reads the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := utils.ParseInt64(raw)
	if err != nil {
		return 0, invalidParam("id", raw)
	}
	return id, nil
}

// int64Param returns nil when name is absent from query.
func int64Param(query url.Values, name string) (*int64, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := utils.ParseInt64(raw)
	if err != nil {
		return nil, invalidParam(name, raw)
	}
	return &n, nil
}

func intParam(query url.Values, name string) (*int, error) {
	raw := query.Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := utils.ParseInt(raw)
	if err != nil {
		return nil, invalidParam(name, raw)
	}
	return &n, nil
}

func stringParam(query url.Values, name string) *string {
	if !query.Has(name) {
		return nil
	}
	value := query.Get(name)
	return &value
}
