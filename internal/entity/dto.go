package entity

import "time"

// RegisterRequest is the farm registration payload.
type RegisterRequest struct {
	FarmName string `json:"farm_name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest carries a farm login attempt. Identifier matches either the
// account email or the farm name.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AdminLoginRequest carries an administrator login attempt.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest is shared by forgot-password and resend-verification.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// StatusChangeRequest is the admin action against a farm account. Action must
// be one of suspend, reinstate, deactivate.
type StatusChangeRequest struct {
	Action string `json:"action" binding:"required"`
}

// FarmSummary is the admin dashboard listing row.
type FarmSummary struct {
	ID       uint   `json:"id"`
	FarmName string `json:"farm_name"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// FarmProfile is the farm-facing view of its own account.
type FarmProfile struct {
	FarmID    uint      `json:"farm_id"`
	FarmName  string    `json:"farm_name"`
	Location  string    `json:"location"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// StatisticsResponse is the admin dashboard summary.
type StatisticsResponse struct {
	TotalFarms       int64              `json:"total_farms"`
	TotalScans       int64              `json:"total_scans"`
	ScansToday       int64              `json:"scans_today"`
	MonthlyScanStats []MonthlyScanTotal `json:"monthly_scan_stats"`
}
