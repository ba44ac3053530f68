package otp

import "time"

// OneTimeCode holds the most recently issued login code for an email. Each
// login attempt upserts the row, superseding any earlier unconsumed code.
type OneTimeCode struct {
	ID       int64     `gorm:"primaryKey"`
	Email    string    `gorm:"column:email;uniqueIndex;not null"`
	Code     string    `gorm:"column:code;not null"`
	IssuedAt time.Time `gorm:"column:issued_at;not null"`
}

func (OneTimeCode) TableName() string {
	return "one_time_codes"
}
