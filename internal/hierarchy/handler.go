package hierarchy

import (
	"net/http"
	"strconv"

	errors "github.com/campushub/records-portal/internal"
	"github.com/campushub/records-portal/internal/transport"
)

type ServiceAPI interface {
	Universities() ([]Option, error)
	ChildrenOf(level Level, parentID *int64) ([]Option, error)
	ScopeFor(placement Placement) (*Scope, error)
	ValidatePlacement(placement Placement) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetUniversities(w http.ResponseWriter, r *http.Request) {
	options, err := h.Service.Universities()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to load universities")
		return
	}
	h.WriteJSON(w, http.StatusOK, OptionsResponse{Options: options})
}

func (h *Handler) GetInstitutes(w http.ResponseWriter, r *http.Request) {
	h.children(w, r, LevelInstitute, "university_id")
}

func (h *Handler) GetPrograms(w http.ResponseWriter, r *http.Request) {
	h.children(w, r, LevelProgram, "institute_id")
}

func (h *Handler) GetBranches(w http.ResponseWriter, r *http.Request) {
	h.children(w, r, LevelBranch, "program_id")
}

// children serves the live refresh endpoints. A missing parameter is a
// client error here; a present-but-malformed one degrades to an empty set,
// matching form re-validation behavior.
func (h *Handler) children(w http.ResponseWriter, r *http.Request, level Level, param string) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		h.Logger.Error("missing parent parameter", "level", level, "param", param)
		appErr := errors.NewValidationError("missing parameter: "+param, errors.ErrCodeMissingParameter)
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	var parentID *int64
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		parentID = &id
	}

	options, err := h.Service.ChildrenOf(level, parentID)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to load options")
		return
	}

	h.WriteJSON(w, http.StatusOK, OptionsResponse{Options: options})
}
