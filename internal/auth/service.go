package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	errors "github.com/campushub/records-portal/internal"
	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	"github.com/campushub/records-portal/internal/core/events"
	"golang.org/x/crypto/bcrypt"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service drives the login state machine:
//
//	AwaitingCredentials → CaptchaCheck → PasswordCheck → FirstLoginCheck →
//	ProfileCompletenessCheck → OtpIssued → OtpVerified(SessionActive)
//
// Every failure resets to AwaitingCredentials with a fresh CAPTCHA; no state
// is ever skipped.
type Service struct {
	accounts    AccountRepository
	otps        OtpRepository
	captcha     CaptchaStore
	sessions    *SessionManager
	bus         EventPublisher
	logger      *slog.Logger
	otpValidity time.Duration
	bcryptCost  int
	now         func() time.Time
}

func NewService(
	accounts AccountRepository,
	otps OtpRepository,
	captcha CaptchaStore,
	sessions *SessionManager,
	bus EventPublisher,
	otpValidity time.Duration,
	bcryptCost int,
	logger *slog.Logger,
) *Service {
	if otpValidity <= 0 {
		otpValidity = 5 * time.Minute
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		accounts:    accounts,
		otps:        otps,
		captcha:     captcha,
		sessions:    sessions,
		bus:         bus,
		logger:      logger,
		otpValidity: otpValidity,
		bcryptCost:  bcryptCost,
		now:         time.Now,
	}
}

// StartLogin issues a fresh CAPTCHA challenge. Called on every GET of the
// login entry point; earlier challenges simply age out of the store.
func (s *Service) StartLogin(ctx context.Context) (*Challenge, error) {
	captchaValue, err := GenerateCaptcha()
	if err != nil {
		return nil, err
	}

	token := NewChallengeToken()
	if err := s.captcha.Save(ctx, token, captchaValue); err != nil {
		s.logger.Error("failed to store captcha challenge", "error", err)
		return nil, err
	}

	return &Challenge{Token: token, Captcha: captchaValue}, nil
}

// Login runs the state machine up to OTP issuance (or the earlier first-login
// and profile-completeness exits).
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// CaptchaCheck: the challenge is consumed whether or not it matches.
	stored, err := s.captcha.Consume(ctx, dto.ChallengeToken)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != dto.Captcha {
		return nil, errors.ErrInvalidCaptcha
	}

	account, err := s.lookupAccount(dto.Username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.ErrUnknownAccount
	}
	if !account.IsActive {
		return nil, errors.ErrAccountInactive
	}

	// PasswordCheck
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := s.ensureProfile(account.ID); err != nil {
		return nil, err
	}

	// FirstLoginCheck: a never-completed session goes straight to the forced
	// password change; OTP is bypassed entirely.
	if account.LastLoginAt == nil {
		token, err := s.sessions.Issue(account.ID, account.Username, account.Role, account.IsStaff, ScopePasswordChange)
		if err != nil {
			return nil, err
		}
		return &LoginResult{NextStep: NextStepChangePassword, Token: token}, nil
	}

	// ProfileCompletenessCheck: no OTP until the role-appropriate Person
	// record exists.
	next, err := s.profileGate(account)
	if err != nil {
		return nil, err
	}
	if next != "" {
		token, err := s.sessions.Issue(account.ID, account.Username, account.Role, account.IsStaff, ScopeProfileSetup)
		if err != nil {
			return nil, err
		}
		return &LoginResult{NextStep: next, Token: token}, nil
	}

	// OtpIssued: upsert supersedes any prior unconsumed code for the email.
	code, err := GenerateOtp()
	if err != nil {
		return nil, err
	}
	if err := s.otps.Upsert(account.Email, code, s.now()); err != nil {
		s.logger.Error("failed to store otp", "email", account.Email, "error", err)
		return nil, err
	}

	if s.bus != nil {
		_ = s.bus.Publish(ctx, events.NewOtpIssuedEvent(account.Email, code))
	}

	return &LoginResult{NextStep: NextStepVerifyOtp, Email: account.Email}, nil
}

// VerifyOtp completes the state machine. The submitted code must match the
// most recently issued one and be under 5 minutes old; a stale or wrong code
// is NOT regenerated, the caller must restart from login.
func (s *Service) VerifyOtp(ctx context.Context, email, code string) (string, error) {
	record, err := s.otps.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if record == nil || record.Code != code {
		return "", errors.ErrInvalidOrExpiredOtp
	}
	if s.now().Sub(record.IssuedAt) > s.otpValidity {
		return "", errors.ErrInvalidOrExpiredOtp
	}

	account, err := s.accounts.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", errors.ErrUnknownAccount
	}

	if err := s.accounts.StampLastLogin(account.ID, s.now()); err != nil {
		s.logger.Error("failed to stamp last login", "account_id", account.ID, "error", err)
	}

	return s.sessions.Issue(account.ID, account.Username, account.Role, account.IsStaff, ScopeFull)
}

// ChangePassword verifies the old password, enforces the strength policy and
// flips the first-login flags exactly once.
func (s *Service) ChangePassword(ctx context.Context, username string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if err := ValidatePasswordStrength(dto.NewPassword); err != nil {
		return err
	}

	account, err := s.accounts.GetByUsername(username)
	if err != nil {
		return err
	}
	if account == nil {
		return errors.ErrUnknownAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.OldPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.accounts.UpdatePassword(account.ID, string(hash)); err != nil {
		return err
	}

	profile, err := s.accounts.GetProfile(account.ID)
	if err != nil {
		return err
	}
	if profile != nil && (profile.FirstLogin || profile.IsDefaultPassword) {
		if err := s.accounts.MarkPasswordChanged(account.ID); err != nil {
			return err
		}
	}

	// the forced first-login change counts as completing a session
	if account.LastLoginAt == nil {
		if err := s.accounts.StampLastLogin(account.ID, s.now()); err != nil {
			s.logger.Error("failed to stamp last login", "account_id", account.ID, "error", err)
		}
	}

	return nil
}

// ValidateSession validates a session token and returns its claims.
func (s *Service) ValidateSession(tokenString string) (*Claims, error) {
	return s.sessions.Validate(tokenString)
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// lookupAccount resolves by username, or by email when the submitted name
// looks like one.
func (s *Service) lookupAccount(username string) (*accountDatamodel.Account, error) {
	if strings.Contains(username, "@") {
		return s.accounts.GetByEmail(username)
	}
	return s.accounts.GetByUsername(username)
}

func (s *Service) ensureProfile(accountID int64) error {
	profile, err := s.accounts.GetProfile(accountID)
	if err != nil {
		return err
	}
	if profile == nil {
		return s.accounts.CreateProfile(&accountDatamodel.Profile{AccountID: accountID})
	}
	return nil
}

func (s *Service) profileGate(account *accountDatamodel.Account) (NextStep, error) {
	if !account.IsStaff {
		has, err := s.accounts.HasStudentRecord(account.ID)
		if err != nil {
			return "", err
		}
		if !has {
			return NextStepCompleteStudentProfile, nil
		}
		return "", nil
	}

	has, err := s.accounts.HasEmployeeRecord(account.ID)
	if err != nil {
		return "", err
	}
	if !has {
		return NextStepCompleteEmployeeProfile, nil
	}
	return "", nil
}
