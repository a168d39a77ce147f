package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"kpimanager/lifecycle"
	"kpimanager/models"
	"kpimanager/rbac"
	"kpimanager/services"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

// DecodeAndValidate decodes the request body into a structure and validates it
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
		return err
	}
	if err := Validate.Struct(v); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)

		for _, e := range validationErrors {
			errorMessages[e.Field()] = e.Tag()
		}
		HandleValidationResponse(w, http.StatusBadRequest, errorMessages)
		return err
	}
	return nil
}

// HandleMessageResponse handles both success and error responses
func HandleMessageResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewMessageResponse(statusCode, message)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// HandleValidationResponse handles validation errors response for struct validation
func HandleValidationResponse(w http.ResponseWriter, statusCode int, validationErrors any) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewValidationResponse(statusCode, validationErrors)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// HandleDataResponse handles success responses with data
func HandleDataResponse(w http.ResponseWriter, message string, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	response := models.NewDataResponse(statusCode, message, data)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// HandleServiceError maps the service error taxonomy onto HTTP statuses:
// permission denial and scope violations are 403, malformed enum inputs and
// negative progress values are 400, missing documents are 404, bad
// credentials are 401, everything else is 500.
func HandleServiceError(w http.ResponseWriter, err error) {
	var denied *rbac.PermissionDeniedError

	switch {
	case errors.As(err, &denied):
		HandleMessageResponse(w, denied.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrOutOfScope):
		HandleMessageResponse(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, rbac.ErrUnknownRole),
		errors.Is(err, rbac.ErrUnknownPermission),
		errors.Is(err, lifecycle.ErrNegativeValue):
		HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrEmailTaken):
		HandleMessageResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled):
		HandleMessageResponse(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, mongo.ErrNoDocuments):
		HandleMessageResponse(w, "Resource not found", http.StatusNotFound)
	default:
		HandleMessageResponse(w, err.Error(), http.StatusInternalServerError)
	}
}
