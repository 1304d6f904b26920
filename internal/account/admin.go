package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aqualeaf/internal/entity"
	"aqualeaf/internal/model"
)

// Administrator actions permitted against a farm account. Requests are
// validated against this allow-list before any dispatch.
const (
	ActionSuspend    = "suspend"
	ActionReinstate  = "reinstate"
	ActionDeactivate = "deactivate"
)

type statusAction struct {
	status string
	event  string
}

var statusActions = map[string]statusAction{
	ActionSuspend:    {status: entity.StatusSuspended, event: entity.EventSuspendFarm},
	ActionReinstate:  {status: entity.StatusActive, event: entity.EventReinstateFarm},
	ActionDeactivate: {status: entity.StatusDeactivated, event: entity.EventDeactivateFarm},
}

// ChangeStatus applies an administrator-triggered status transition. Two
// concurrent actions against the same account race at the storage layer:
// the last status write wins, and both still produce their own audit record.
func (s *Service) ChangeStatus(ctx context.Context, adminEmail string, farmID uint, action string) error {
	mapped, ok := statusActions[strings.TrimSpace(action)]
	if !ok {
		return ErrInvalidAction
	}

	updated, err := s.repo.UpdateFarmStatus(ctx, farmID, mapped.status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !updated {
		return ErrNotFound
	}

	targetFarm := fmt.Sprintf("farm_id:%d", farmID)
	if farm, err := s.repo.FindFarmByID(ctx, farmID); err == nil {
		targetFarm = farm.FarmName
	}
	s.audit.Record(ctx, mapped.event, adminEmail, targetFarm)
	return nil
}

// HardDelete permanently erases a farm account. Only deactivated accounts are
// eligible; anything else reports ErrNotFound and mutates nothing.
func (s *Service) HardDelete(ctx context.Context, adminEmail string, farmID uint) error {
	deleted, err := s.repo.DeleteDeactivatedFarm(ctx, farmID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.audit.Record(ctx, entity.EventDeleteFarm, adminEmail, fmt.Sprintf("farm_id:%d", farmID))
	return nil
}

// ListAccounts returns the admin dashboard summary rows, newest first.
func (s *Service) ListAccounts(ctx context.Context) ([]entity.FarmSummary, error) {
	farms, err := s.repo.ListFarms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	summaries := make([]entity.FarmSummary, 0, len(farms))
	for _, farm := range farms {
		summaries = append(summaries, entity.FarmSummary{
			ID:       farm.FarmID,
			FarmName: farm.FarmName,
			Email:    farm.Email,
			Status:   farm.Status,
		})
	}
	return summaries, nil
}

// Profile returns the farm-facing view of an account.
func (s *Service) Profile(ctx context.Context, farmID uint) (*entity.FarmProfile, error) {
	farm, err := s.repo.FindFarmByID(ctx, farmID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &entity.FarmProfile{
		FarmID:    farm.FarmID,
		FarmName:  farm.FarmName,
		Location:  farm.Location,
		Email:     farm.Email,
		Status:    farm.Status,
		CreatedAt: farm.CreatedAt,
	}, nil
}
