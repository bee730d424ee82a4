package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/replicate/request-inspector/internal/inspect"
)

const AllowedMethods = "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS"

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler echoes every request it receives, regardless of method or path
type Handler struct {
	maxBodyBytes int64
	console      *Console
	logger       *zap.Logger
}

func NewHandler(maxBodyBytes int64, console *Console, logger *zap.Logger) *Handler {
	return &Handler{
		maxBodyBytes: maxBodyBytes,
		console:      console,
		logger:       logger.Named("server"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.logger.Sugar()
	id := requestID()

	body, err := h.readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warnw("request body too large", "id", id, "limit", tooLarge.Limit, "remote_addr", r.RemoteAddr)
			h.writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		log.Errorw("failed to read request body", "id", id, "remote_addr", r.RemoteAddr, "error", err)
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	pr := inspect.Inspect(r, body)
	trace.SpanFromContext(r.Context()).SetAttributes(
		attribute.String("inspector.request_id", id),
		attribute.String("inspector.body_type", pr.BodyType.String()),
		attribute.Int("inspector.body_size", len(body)),
	)
	h.console.Print(pr)
	log.Infow("inspected request",
		"id", id,
		"method", pr.Method,
		"path", pr.Path,
		"remote_addr", pr.RemoteAddr,
		"body_type", pr.BodyType.String(),
		"body_size", len(body),
	)

	bs, err := compactJSON(pr)
	if err != nil {
		log.Errorw("failed to marshal request", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to render request")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(bs)))
	w.Header().Set("X-Request-Id", id)
	if r.Method == http.MethodOptions {
		w.Header().Set("Allow", AllowedMethods)
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	h.writeBytes(w, bs)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	bs, err := compactJSON(ErrorResponse{Error: msg})
	if err != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	h.writeBytes(w, bs)
}

func (h *Handler) writeBytes(w http.ResponseWriter, bs []byte) {
	if _, err := w.Write(bs); err != nil {
		h.logger.Sugar().Errorw("failed to write response", "error", err)
	}
}

func requestID() string {
	u, err := uuid.NewV7()
	if err != nil {
		return ""
	}
	return u.String()
}
