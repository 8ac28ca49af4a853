package utils

import (
	"encoding/json"
	"net/http"

	"movie-booking/pkg/apperr"
)

type Response struct {
	Status  bool   `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes JSON response with custom status code
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	writeResponse(w, code, Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func writeResponse(w http.ResponseWriter, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

func responseError(w http.ResponseWriter, status int, kind apperr.Kind, message string, errors any) {
	writeResponse(w, status, Response{
		Status:  false,
		Code:    string(kind),
		Message: message,
		Errors:  errors,
	})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	responseError(w, http.StatusBadRequest, apperr.KindValidation, message, errors)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	responseError(w, http.StatusUnauthorized, apperr.KindUnauthorized, message, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	responseError(w, http.StatusForbidden, apperr.KindForbidden, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	responseError(w, http.StatusNotFound, apperr.KindNotFound, message, nil)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	responseError(w, http.StatusConflict, apperr.KindConflict, message, nil)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	responseError(w, http.StatusInternalServerError, apperr.KindInternal, message, nil)
}

// ResponseError picks the status for err from its category.
func ResponseError(w http.ResponseWriter, err error) {
	msg := apperr.Message(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		ResponseBadRequest(w, msg, nil)
	case apperr.KindNotFound:
		ResponseNotFound(w, msg)
	case apperr.KindConflict:
		ResponseConflict(w, msg)
	case apperr.KindForbidden:
		ResponseForbidden(w, msg)
	case apperr.KindUnauthorized:
		ResponseUnauthorized(w, msg)
	default:
		ResponseInternalError(w, msg)
	}
}
