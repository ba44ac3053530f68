package auth

import (
	"github.com/campushub/records-portal/internal/core/common/validation"
)

type LoginDTO struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	ChallengeToken string `json:"challenge_token"`
	Captcha        string `json:"captcha"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required()
	v.Field("password", d.Password).Required()
	v.Field("challenge_token", d.ChallengeToken).Required()
	v.Field("captcha", d.Captcha).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type VerifyOtpDTO struct {
	Email string `json:"-"`
	Code  string `json:"code"`
}

func (d VerifyOtpDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("code", d.Code).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("old_password", d.OldPassword).Required()
	v.Field("new_password", d.NewPassword).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ChallengeResponse struct {
	ChallengeToken string `json:"challenge_token"`
	Captcha        string `json:"captcha"`
}

type LoginResponse struct {
	NextStep string `json:"next_step"`
	Token    string `json:"token,omitempty"`
	Email    string `json:"email,omitempty"`
}

type SessionResponse struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	IsStaff   bool   `json:"is_staff"`
	Scope     string `json:"scope"`
}
