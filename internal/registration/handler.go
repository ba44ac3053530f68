package registration

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	internal "github.com/campushub/records-portal/internal"
	"github.com/campushub/records-portal/internal/transport"
	"github.com/campushub/records-portal/pkg/logger"
)

type ServiceAPI interface {
	RegisterStudent(ctx context.Context, actor internal.Actor, dto RegisterStudentDTO) (*RegistrationResponse, error)
	RegisterEmployee(ctx context.Context, actor internal.Actor, dto RegisterEmployeeDTO) (*RegistrationResponse, error)
	RegisterUser(ctx context.Context, actor internal.Actor, dto RegisterUserDTO) (*RegistrationResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var dto RegisterStudentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.RegisterStudent(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Error("student registration rejected", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var dto RegisterEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.RegisterEmployee(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Error("employee registration rejected", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var dto RegisterUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.RegisterUser(r.Context(), actor, dto)
	if err != nil {
		h.Logger.Error("user registration rejected", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}
