package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Kind classifies a failed backend call so callers can decide between
// surfacing, retrying and forcing re-authentication.
type Kind int

const (
	KindUnclassified Kind = iota
	KindBadRequest
	KindValidation
	KindAuth
	KindNotFound
	KindServer
	KindTimeout
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindServer:
		return "server"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	default:
		return "unclassified"
	}
}

// Error is a classified backend failure. Message is user-facing and prefers
// whatever the backend put in its response body over the generic default.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether another attempt could plausibly succeed: the
// backend blew up, timed out mid cold start, or never answered at all.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindServer, KindTimeout, KindNetwork:
		return true
	}
	return false
}

func classifyStatus(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Message: serverMessage(body)}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindAuth
		e.defaultMessage("Sessão expirada. Faça login novamente.")
	case status == http.StatusBadRequest:
		e.Kind = KindBadRequest
		e.defaultMessage("Requisição inválida.")
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
		e.defaultMessage("Recurso não encontrado.")
	case status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
		e.defaultMessage("Dados inválidos.")
	case status >= http.StatusInternalServerError:
		e.Kind = KindServer
		e.defaultMessage("Erro interno do servidor. Tente novamente mais tarde.")
	default:
		e.Kind = KindUnclassified
		e.defaultMessage(fmt.Sprintf("Erro inesperado (HTTP %d).", status))
	}
	return e
}

func classifyTransport(err error) *Error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &Error{
			Kind:    KindTimeout,
			Message: "Tempo de resposta excedido. O servidor pode estar iniciando.",
		}
	default:
		return &Error{
			Kind:    KindNetwork,
			Message: "Erro de conexão. Verifique se o servidor está online.",
		}
	}
}

func (e *Error) defaultMessage(msg string) {
	if e.Message == "" {
		e.Message = msg
	}
}

// serverMessage digs the human-readable message out of an error body. The
// backend has used all three keys across revisions.
func serverMessage(body []byte) string {
	var payload struct {
		Erro    string `json:"erro"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, m := range []string{payload.Erro, payload.Detail, payload.Message} {
		if m != "" {
			return m
		}
	}
	return ""
}
