package errors

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrBadRequest             = errors.New("bad request")
	ErrInternalServer         = errors.New("internal server error")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrInvalidToken           = errors.New("invalid token")
	ErrTokenExpired           = errors.New("token expired")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthenticationFailed   = errors.New("authentication failed")
	ErrUserNotFoundOrInactive = errors.New("user not found or inactive")
	ErrAccessDenied           = errors.New("access denied: not a participant of this conversation")
	ErrCannotMessageSelf      = errors.New("cannot send a message to yourself")
	ErrEmptyMessage           = errors.New("message content is empty")
	ErrMessageTooLong         = errors.New("message content is too long")
	ErrReceiverNotFound       = errors.New("receiver not found")
	ErrPropertyNotFound       = errors.New("property not found")
	ErrInvalidConversationID  = errors.New("invalid conversation id")
)

type APIError struct {
	Message string `json:"error"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(message string, code int) *APIError {
	return &APIError{
		Message: message,
		Code:    code,
	}
}

func HTTPStatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrReceiverNotFound),
		errors.Is(err, ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrAuthenticationRequired),
		errors.Is(err, ErrAuthenticationFailed),
		errors.Is(err, ErrUserNotFoundOrInactive):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden),
		errors.Is(err, ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrCannotMessageSelf),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrMessageTooLong),
		errors.Is(err, ErrInvalidConversationID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
