package domain

import (
	"encoding/json"
	"net/http"
)

const (
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json"
)

type ErrorResponse struct {
	Error Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return e.Code + ": " + e.Message
}

var (
	ErrValidation = Error{
		Code:    "VALIDATION_ERROR",
		Message: "reviewer name is required",
	}

	ErrReviewerExists = Error{
		Code:    "REVIEWER_EXISTS",
		Message: "reviewer already assigned to topic",
	}

	ErrReviewerCap = Error{
		Code:    "REVIEWER_CAP",
		Message: "topic already has the maximum number of reviewers",
	}

	ErrNotFound = Error{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}

	ErrBadRequest = Error{
		Code:    "BAD_REQUEST",
		Message: "bad request",
	}

	ErrInternal = Error{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	}
)

func NewErrorResponse(w http.ResponseWriter, e Error, statusCode int) {
	errRes := ErrorResponse{
		Error: e}

	jsonErrRes, err := json.Marshal(errRes)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(statusCode)
	w.Write(jsonErrRes)
}
