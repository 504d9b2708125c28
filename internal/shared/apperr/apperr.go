// Package apperr defines the error kinds surfaced at the HTTP boundary.
// Every failure leaving a usecase is mapped to exactly one Kind, and the
// transport layer turns the Kind into a status code and a uniform body.
package apperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for the client.
type Kind int

const (
	// KindInternal is the fallback for anything not classified below.
	KindInternal Kind = iota
	// KindValidation means the request was malformed.
	KindValidation
	// KindConflict means the resource already exists.
	KindConflict
	// KindUnauthenticated covers missing, invalid or stale credentials.
	KindUnauthenticated
	// KindUnavailable means the store or an upstream API failed or timed out.
	KindUnavailable
)

// String returns the machine readable code sent to clients.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_FAILED"
	case KindConflict:
		return "ALREADY_EXISTS"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// HTTPStatus maps the kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a Kind, a client-safe message and the underlying cause.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind and Message so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message && t.Err == nil
}

// New creates an Error without a cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a new Error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind of err. Context cancellation and deadlines count as
// unavailable so a slow store surfaces as 503 rather than 500.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindUnavailable
	}
	return KindInternal
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	if KindOf(err) == KindUnavailable {
		return "Service unavailable"
	}
	return "Internal server error"
}

// Response is the body written for every failed request.
// "detail" is the key the web client reads.
type Response struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// ToResponse converts err into the uniform error body.
func ToResponse(err error) Response {
	return Response{Detail: MessageOf(err), Code: KindOf(err).String()}
}

// Respond aborts the gin request with the status and body derived from err.
// Unauthenticated responses also carry the bearer challenge header.
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	attrs := []any{"error", err, "code", kind.String(), "path", c.FullPath(), "remote_addr", c.ClientIP()}
	switch kind {
	case KindInternal, KindUnavailable:
		slog.Error("request failed", attrs...)
	default:
		slog.Warn("request rejected", attrs...)
	}
	if kind == KindUnauthenticated {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), ToResponse(err))
}
