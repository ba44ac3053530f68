package auth

import (
	"time"

	accountDatamodel "github.com/campushub/records-portal/internal/core/datamodel/account"
	otpDatamodel "github.com/campushub/records-portal/internal/core/datamodel/otp"
)

// NextStep tells the client where the login state machine left off.
type NextStep string

const (
	NextStepChangePassword          NextStep = "change_password"
	NextStepCompleteStudentProfile  NextStep = "complete_student_profile"
	NextStepCompleteEmployeeProfile NextStep = "complete_employee_profile"
	NextStepVerifyOtp               NextStep = "verify_otp"
	NextStepDone                    NextStep = "done"
)

// Session scopes. A scoped session can only call the step it was issued
// for; a full session is only ever issued after OTP verification (or a
// completed forced password change).
const (
	ScopeFull           = "full"
	ScopePasswordChange = "password_change"
	ScopeProfileSetup   = "profile_setup"
)

// Challenge is a CAPTCHA the client must echo back on the next login POST.
type Challenge struct {
	Token   string `json:"challenge_token"`
	Captcha string `json:"captcha"`
}

// LoginResult is the outcome of a successful credentials+CAPTCHA check: the
// next state to drive and, when that state needs one, a scoped session.
type LoginResult struct {
	NextStep NextStep
	Token    string
	Email    string
}

type AccountRepository interface {
	GetByUsername(username string) (*accountDatamodel.Account, error)
	GetByEmail(email string) (*accountDatamodel.Account, error)
	GetProfile(accountID int64) (*accountDatamodel.Profile, error)
	CreateProfile(profile *accountDatamodel.Profile) error
	UpdatePassword(accountID int64, passwordHash string) error
	MarkPasswordChanged(accountID int64) error
	StampLastLogin(accountID int64, at time.Time) error
	HasStudentRecord(accountID int64) (bool, error)
	HasEmployeeRecord(accountID int64) (bool, error)
}

type OtpRepository interface {
	Upsert(email, code string, issuedAt time.Time) error
	GetByEmail(email string) (*otpDatamodel.OneTimeCode, error)
}
