package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	internal "github.com/campushub/records-portal/internal"
	"github.com/campushub/records-portal/internal/transport"
	"github.com/campushub/records-portal/pkg/logger"
)

type ServiceAPI interface {
	StartLogin(ctx context.Context) (*Challenge, error)
	Login(ctx context.Context, dto LoginDTO) (*LoginResult, error)
	VerifyOtp(ctx context.Context, email, code string) (string, error)
	ChangePassword(ctx context.Context, username string, dto ChangePasswordDTO) error
	ValidateSession(tokenString string) (*Claims, error)
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

// GetLogin issues a fresh CAPTCHA challenge for the login form.
func (h *Handler) GetLogin(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.Service.StartLogin(r.Context())
	if err != nil {
		h.Logger.Error("failed to start login", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, ChallengeResponse{
		ChallengeToken: challenge.Token,
		Captcha:        challenge.Captcha,
	})
}

// PostLogin runs the credential stages. Any auth-stage failure comes back with
// a fresh challenge so the client can retry without an extra round trip; the
// spent one is gone either way.
func (h *Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		h.Logger.Error("login failed", "username", dto.Username, "error", err)
		h.writeLoginFailure(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		NextStep: string(result.NextStep),
		Token:    result.Token,
		Email:    result.Email,
	})
}

// VerifyOtp is scoped by the email the code was issued to.
func (h *Handler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var dto VerifyOtpDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dto.Email = chi.URLParam(r, "email")
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	token, err := h.Service.VerifyOtp(r.Context(), dto.Email, dto.Code)
	if err != nil {
		h.Logger.Error("otp verification failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		NextStep: string(NextStepDone),
		Token:    token,
	})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(r.Context(), actor.Username, dto); err != nil {
		h.Logger.Error("password change failed", "username", actor.Username, "error", err)
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Logout validates the presented token and ends the session client-side.
// Sessions are stateless JWTs so there is nothing to revoke server-side.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	if _, err := h.Service.ValidateSession(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSession echoes the claims of the presented token.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	h.WriteJSON(w, http.StatusOK, SessionResponse{
		AccountID: actor.AccountID,
		Username:  actor.Username,
		Role:      actor.Role,
		IsStaff:   actor.IsStaff,
		Scope:     actor.Scope,
	})
}

// AuthMiddleware validates the bearer token and puts the Actor on the request
// context. Scope enforcement is layered separately via RequireScope.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateSession(token)
		if err != nil {
			h.Logger.Error("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		actor := internal.Actor{
			AccountID: claims.AccountID,
			Username:  claims.Username,
			Role:      claims.Role,
			IsStaff:   claims.IsStaff,
			Scope:     claims.Scope,
		}

		ctx := internal.ContextWithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireScope rejects sessions whose scope is not in the allowed set. Partial
// tokens issued mid-state-machine can only reach their own next step.
func (h *Handler) RequireScope(scopes ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		allowed[s] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
				return
			}
			if _, ok := allowed[actor.Scope]; !ok {
				h.WriteError(w, http.StatusForbidden, "session scope does not permit this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff rejects non-staff accounts.
func (h *Handler) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := internal.ActorFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}
		if !actor.IsStaff {
			h.WriteError(w, http.StatusForbidden, "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) writeLoginFailure(w http.ResponseWriter, r *http.Request, err error) {
	var challenge *ChallengeResponse
	if fresh, cerr := h.Service.StartLogin(r.Context()); cerr == nil {
		challenge = &ChallengeResponse{ChallengeToken: fresh.Token, Captcha: fresh.Captcha}
	}

	appErr, ok := internal.IsAppError(err)
	if !ok {
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, appErr.StatusCode, struct {
		Error     *internal.AppError `json:"error"`
		Challenge *ChallengeResponse `json:"challenge,omitempty"`
	}{Error: appErr, Challenge: challenge})
}
