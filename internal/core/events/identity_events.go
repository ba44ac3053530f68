package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAccountProvisioned = "account.provisioned"
	EventTypeOtpIssued          = "otp.issued"
)

// AccountProvisionedEvent carries the welcome-credentials payload dispatched
// after a registration transaction commits. The temporary password travels
// only through the in-process bus, never through the store.
type AccountProvisionedEvent struct {
	BaseEvent
	AccountID    int64  `json:"account_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	TempPassword string `json:"-"`
}

func NewAccountProvisionedEvent(accountID int64, username, email, tempPassword string) *AccountProvisionedEvent {
	return &AccountProvisionedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAccountProvisioned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"account_id": accountID,
				"username":   username,
				"email":      email,
			},
		},
		AccountID:    accountID,
		Username:     username,
		Email:        email,
		TempPassword: tempPassword,
	}
}

type OtpIssuedEvent struct {
	BaseEvent
	Email string `json:"email"`
	Code  string `json:"-"`
}

func NewOtpIssuedEvent(email, code string) *OtpIssuedEvent {
	return &OtpIssuedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOtpIssued,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"email": email,
			},
		},
		Email: email,
		Code:  code,
	}
}
