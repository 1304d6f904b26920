package entity

import "time"

// Audit event types recorded in system_logs.
const (
	EventLoginFarm        = "LOGIN_FARM"
	EventLoginFarmFailed  = "LOGIN_FARM_FAILED"
	EventLoginFarmBlocked = "LOGIN_FARM_BLOCKED"
	EventLoginAdmin       = "LOGIN_ADMIN"
	EventLoginAdminFailed = "LOGIN_ADMIN_FAILED"
	EventSuspendFarm      = "SUSPEND_FARM"
	EventReinstateFarm    = "REINSTATE_FARM"
	EventDeactivateFarm   = "DEACTIVATE_FARM"
	EventDeleteFarm       = "DELETE_FARM"
)

// SystemLog is an append-only audit record. Rows are never updated or deleted
// by the application.
type SystemLog struct {
	LogID      uint      `gorm:"column:log_id;primarykey" json:"log_id"`
	EventType  string    `gorm:"column:event_type;type:varchar(50);index;not null" json:"event_type"`
	ActorEmail string    `gorm:"column:actor_email;type:varchar(255)" json:"actor_email"`
	TargetFarm *string   `gorm:"column:target_farm;type:varchar(255)" json:"target_farm"`
	Timestamp  time.Time `gorm:"column:timestamp;index;autoCreateTime" json:"timestamp"`
}

// TableName keeps the historical table name.
func (SystemLog) TableName() string {
	return "system_logs"
}

// SystemLogQuery filters the audit trail. String filters other than EventType
// are substring matches; date bounds are inclusive.
type SystemLogQuery struct {
	EventType  string `form:"event_type"`
	ActorEmail string `form:"actor_email"`
	TargetFarm string `form:"target_farm"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}
