package account

import "time"

type Account struct {
	ID           int64      `gorm:"primaryKey"`
	Username     string     `gorm:"column:username;uniqueIndex;not null"`
	Email        string     `gorm:"column:email;uniqueIndex;not null"`
	Role         string     `gorm:"column:role;not null;default:'student'"`
	IsActive     bool       `gorm:"column:is_active;default:true"`
	IsStaff      bool       `gorm:"column:is_staff;default:false"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Account) TableName() string {
	return "accounts"
}

// Profile is the 1:1 companion holding first-login state and the contact
// identifiers collected at registration. first_login and is_default_password
// start true and flip to false exactly once, after the first successful
// password change.
type Profile struct {
	ID                int64     `gorm:"primaryKey"`
	AccountID         int64     `gorm:"column:account_id;uniqueIndex;not null"`
	FirstLogin        bool      `gorm:"column:first_login;default:true"`
	IsDefaultPassword bool      `gorm:"column:is_default_password;default:true"`
	MobileNumber      string    `gorm:"column:mobile_number"`
	AadharNumber      string    `gorm:"column:aadhar_number"`
	CreatedAt         time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt         time.Time `gorm:"column:updated_at;default:now()"`
}

func (Profile) TableName() string {
	return "profiles"
}
