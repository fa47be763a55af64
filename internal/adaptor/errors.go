package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"movie-api/internal/dto/request"
	"movie-api/pkg/apperror"
	"movie-api/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError writes the response for an error returned by a service
// or a request helper. Anything that is not an *apperror.Error is a 500.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := apperror.As(err)
	if !ok || appErr.Kind == apperror.KindInternal {
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
		)
		utils.ResponseInternalError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindNotFound:
		log.Warn(operation+" failed - not found",
			zap.String("message", appErr.Message),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, appErr.Message)

	default:
		log.Warn("Invalid input for "+operation,
			zap.String("message", appErr.Message),
			zap.String("fields", utils.FormatValidationErrors(appErr.Fields)),
			zap.String("operation", operation))

		var fields any
		if len(appErr.Fields) > 0 {
			fields = appErr.Fields
		}
		utils.ResponseBadRequest(w, appErr.Message, fields)
	}
}

// decodeJSON reads the request body into dst, turning decode failures into
// MalformedRequest errors that name the offending field where possible.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		switch {
		case request.IsDateType(typeErr.Type):
			return apperror.Malformed("Invalid date format for field '%s': '%s'. Expected format is YYYY-MM-DD.", typeErr.Field, typeErr.Value)
		default:
			return apperror.Malformed("Invalid %s for field '%s': '%s'", typeName(typeErr), typeErr.Field, typeErr.Value)
		}
	}

	return &apperror.Error{
		Kind:    apperror.KindMalformedRequest,
		Message: "Malformed JSON request or invalid field values",
		Err:     err,
	}
}

func typeName(typeErr *json.UnmarshalTypeError) string {
	if request.IsIntegerType(typeErr.Type) {
		return "Integer"
	}
	if typeErr.Type == nil {
		return "value"
	}
	switch typeErr.Type.Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	if name := typeErr.Type.Name(); name != "" {
		return name
	}
	return typeErr.Type.Kind().String()
}
