package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"

	internal "github.com/campushub/records-portal/internal"
	"github.com/campushub/records-portal/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type MockService struct {
	challenges      int
	loginResult     *auth.LoginResult
	loginErr        error
	verifyToken     string
	verifyErr       error
	changeErr       error
	validatedClaims *auth.Claims
	validateErr     error
}

func (m *MockService) StartLogin(ctx context.Context) (*auth.Challenge, error) {
	m.challenges++
	return &auth.Challenge{Token: "tok-fresh", Captcha: "ZZ99XX"}, nil
}

func (m *MockService) Login(ctx context.Context, dto auth.LoginDTO) (*auth.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *MockService) VerifyOtp(ctx context.Context, email, code string) (string, error) {
	if m.verifyErr != nil {
		return "", m.verifyErr
	}
	return m.verifyToken, nil
}

func (m *MockService) ChangePassword(ctx context.Context, username string, dto auth.ChangePasswordDTO) error {
	return m.changeErr
}

func (m *MockService) ValidateSession(tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.validatedClaims, nil
}

var _ = Describe("Auth Handler", func() {
	var (
		mockService *MockService
		handler     *auth.Handler
	)

	BeforeEach(func() {
		mockService = &MockService{}
		handler = auth.NewHandler(mockService)
	})

	Describe("GetLogin", func() {
		It("should return a challenge", func() {
			req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
			w := httptest.NewRecorder()

			handler.GetLogin(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.ChallengeResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.ChallengeToken).To(Equal("tok-fresh"))
			Expect(resp.Captcha).To(Equal("ZZ99XX"))
		})
	})

	Describe("PostLogin", func() {
		body := `{"username":"CS2026F001","password":"pw","challenge_token":"tok-1","captcha":"AB12CD"}`

		It("should return the next step on success", func() {
			mockService.loginResult = &auth.LoginResult{
				NextStep: auth.NextStepVerifyOtp,
				Email:    "asha@example.edu",
			}

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.PostLogin(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.NextStep).To(Equal("verify_otp"))
			Expect(resp.Email).To(Equal("asha@example.edu"))
		})

		It("should attach a fresh challenge to an auth failure", func() {
			mockService.loginErr = internal.ErrInvalidCredentials

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.PostLogin(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(mockService.challenges).To(Equal(1))

			var resp struct {
				Error     *internal.AppError      `json:"error"`
				Challenge *auth.ChallengeResponse `json:"challenge"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Error.Code).To(Equal(internal.ErrCodeInvalidCredentials))
			Expect(resp.Challenge).NotTo(BeNil())
			Expect(resp.Challenge.ChallengeToken).To(Equal("tok-fresh"))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))
			w := httptest.NewRecorder()

			handler.PostLogin(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("VerifyOtp", func() {
		verifyRequest := func(email, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/auth/verify-otp/"+email, strings.NewReader(body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("email", email)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.VerifyOtp(w, req)
			return w
		}

		It("should return a full session token", func() {
			mockService.verifyToken = "session-token"

			w := verifyRequest("asha@example.edu", `{"code":"123456"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.NextStep).To(Equal("done"))
			Expect(resp.Token).To(Equal("session-token"))
		})

		It("should map a stale code to unauthorized", func() {
			mockService.verifyErr = internal.ErrInvalidOrExpiredOtp

			w := verifyRequest("asha@example.edu", `{"code":"123456"}`)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should reject a missing code", func() {
			w := verifyRequest("asha@example.edu", `{}`)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("RequireScope", func() {
		okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		requestWithScope := func(scope string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/people/students/profile", nil)
			ctx := internal.ContextWithActor(req.Context(), internal.Actor{
				AccountID: 1,
				Username:  "CS2026F001",
				Scope:     scope,
			})

			w := httptest.NewRecorder()
			handler.RequireScope(auth.ScopeProfileSetup, auth.ScopeFull)(okHandler).ServeHTTP(w, req.WithContext(ctx))
			return w
		}

		It("should pass an allowed scope through", func() {
			Expect(requestWithScope(auth.ScopeProfileSetup).Code).To(Equal(http.StatusNoContent))
			Expect(requestWithScope(auth.ScopeFull).Code).To(Equal(http.StatusNoContent))
		})

		It("should reject a scope issued for another step", func() {
			Expect(requestWithScope(auth.ScopePasswordChange).Code).To(Equal(http.StatusForbidden))
		})

		It("should reject a request with no actor", func() {
			req := httptest.NewRequest(http.MethodPost, "/people/students/profile", nil)
			w := httptest.NewRecorder()

			handler.RequireScope(auth.ScopeFull)(okHandler).ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireStaff", func() {
		okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		It("should reject non-staff accounts", func() {
			req := httptest.NewRequest(http.MethodGet, "/people/students", nil)
			ctx := internal.ContextWithActor(req.Context(), internal.Actor{AccountID: 1, IsStaff: false, Scope: auth.ScopeFull})

			w := httptest.NewRecorder()
			handler.RequireStaff(okHandler).ServeHTTP(w, req.WithContext(ctx))
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should allow staff accounts", func() {
			req := httptest.NewRequest(http.MethodGet, "/people/students", nil)
			ctx := internal.ContextWithActor(req.Context(), internal.Actor{AccountID: 1, IsStaff: true, Scope: auth.ScopeFull})

			w := httptest.NewRecorder()
			handler.RequireStaff(okHandler).ServeHTTP(w, req.WithContext(ctx))
			Expect(w.Code).To(Equal(http.StatusNoContent))
		})
	})
})
