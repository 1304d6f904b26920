package entity

import "time"

// Administrator represents a platform administrator. Administrators carry no
// account status: once provisioned they are always able to authenticate.
type Administrator struct {
	AdminID      uint      `gorm:"column:admin_id;primarykey" json:"admin_id"`
	Username     string    `gorm:"column:username;type:varchar(255);not null" json:"username"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName keeps the historical table name.
func (Administrator) TableName() string {
	return "administrator"
}
