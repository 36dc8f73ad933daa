// Package apperr defines the closed set of error kinds the service can
// surface and the single place they are translated to HTTP responses.
// Internal causes (driver codes, token parse detail) never cross that
// boundary.
package apperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Authentication is deliberately message-less: login and token failures
// must be indistinguishable to the caller.
func Authentication() *Error {
	return &Error{Kind: KindAuthentication, Message: "not authorized"}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Write maps err onto its status class and emits the stable
// {"error": message} body. Unrecognized errors are treated as internal:
// logged server-side, generic message to the client.
func Write(c *gin.Context, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = Internal(err)
	}
	if ae.Kind == KindInternal {
		log.Printf("internal error: %v", ae)
	}
	c.JSON(statusFor(ae.Kind), gin.H{"error": ae.Message})
}

// Abort is Write for middleware: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	Write(c, err)
	c.Abort()
}
