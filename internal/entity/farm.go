package entity

import "time"

// Farm account lifecycle statuses. A farm account is always in exactly one of
// these states; no other value is ever persisted.
const (
	StatusUnverified  = "unverified"
	StatusActive      = "active"
	StatusSuspended   = "suspended"
	StatusDeactivated = "deactivated"
)

// ValidStatus reports whether value is a persistable account status.
func ValidStatus(value string) bool {
	switch value {
	case StatusUnverified, StatusActive, StatusSuspended, StatusDeactivated:
		return true
	default:
		return false
	}
}

// FarmAccount represents a persisted farm-operator account.
type FarmAccount struct {
	FarmID       uint      `gorm:"column:farm_id;primarykey" json:"farm_id"`
	FarmName     string    `gorm:"column:farm_name;type:varchar(255);uniqueIndex;not null" json:"farm_name"`
	Location     string    `gorm:"column:location;type:varchar(255)" json:"location"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Status       string    `gorm:"column:account_status;type:varchar(20);not null;default:unverified" json:"status"`

	VerificationToken   *string    `gorm:"column:verification_token;type:varchar(64);index" json:"-"`
	VerificationExpires *time.Time `gorm:"column:verification_expires" json:"-"`
	ResetToken          *string    `gorm:"column:reset_token;type:varchar(64);index" json:"-"`
	ResetExpires        *time.Time `gorm:"column:reset_expires" json:"-"`

	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	LastUpdated time.Time `gorm:"column:last_updated;autoUpdateTime" json:"last_updated"`
}

// TableName keeps the historical table name.
func (FarmAccount) TableName() string {
	return "farm_account"
}
