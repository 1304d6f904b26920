package model

import (
	"context"
	"errors"
	"time"

	"aqualeaf/internal/entity"
)

// Storage-agnostic failures surfaced by repository implementations. The
// account service maps these onto its own taxonomy; gorm errors never cross
// this boundary.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Repository defines the persistence operations the account subsystem needs.
// Every mutating operation is a single-row, single-statement atomic update;
// the service layer never requires cross-account transactions.
type Repository interface {
	// Farm accounts
	FindFarmByIdentifier(ctx context.Context, identifier string) (*entity.FarmAccount, error)
	FindFarmByEmail(ctx context.Context, email string) (*entity.FarmAccount, error)
	FindFarmByID(ctx context.Context, id uint) (*entity.FarmAccount, error)
	ListFarms(ctx context.Context) ([]entity.FarmAccount, error)
	CreateFarm(ctx context.Context, farm *entity.FarmAccount) error
	CountFarms(ctx context.Context) (int64, error)

	// Verification lifecycle. MarkFarmVerified consumes the token and flips
	// the account to active in one statement; false means no unverified
	// account held that token (or it had expired).
	MarkFarmVerified(ctx context.Context, token string, now time.Time) (bool, error)
	SetVerificationToken(ctx context.Context, farmID uint, token string, expires *time.Time) error

	// Administrator-driven status transitions.
	UpdateFarmStatus(ctx context.Context, farmID uint, status string) (bool, error)
	DeleteDeactivatedFarm(ctx context.Context, farmID uint) (bool, error)

	// Password reset. ResetFarmPassword replaces the credential and clears
	// token+expiry in one guarded statement; false means the token was
	// already consumed or never existed.
	SetResetToken(ctx context.Context, farmID uint, token string, expires time.Time) error
	FindFarmByResetToken(ctx context.Context, token string) (*entity.FarmAccount, error)
	ResetFarmPassword(ctx context.Context, token, passwordHash string) (bool, error)

	// Administrators
	FindAdminByEmail(ctx context.Context, email string) (*entity.Administrator, error)
	CreateAdmin(ctx context.Context, admin *entity.Administrator) error
	CountAdmins(ctx context.Context) (int64, error)

	// Audit trail (append-only)
	AppendSystemLog(ctx context.Context, record *entity.SystemLog) error
	QuerySystemLogs(ctx context.Context, query *entity.SystemLogQuery) ([]entity.SystemLog, error)

	// Dashboard statistics and reference data
	CountScans(ctx context.Context) (int64, error)
	CountScansOn(ctx context.Context, day time.Time) (int64, error)
	MonthlyScanTotals(ctx context.Context, months int) ([]entity.MonthlyScanTotal, error)
	ListSpecies(ctx context.Context) ([]entity.SeaweedSpecies, error)
}
