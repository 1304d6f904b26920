// Package memory provides an in-process model.Repository used by tests and
// local development. Semantics mirror the SQL implementation: single-row
// atomic updates under one mutex, storage-agnostic errors from the model
// package.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"aqualeaf/internal/entity"
	"aqualeaf/internal/model"
)

type Store struct {
	mu sync.Mutex

	farms  map[uint]entity.FarmAccount
	admins map[uint]entity.Administrator
	logs   []entity.SystemLog

	freshScans []entity.ScanReportFresh
	driedScans []entity.ScanReportDried
	species    map[uint]entity.SeaweedSpecies

	nextFarmID  uint
	nextAdminID uint
	nextLogID   uint
}

func NewStore() *Store {
	return &Store{
		farms:       make(map[uint]entity.FarmAccount),
		admins:      make(map[uint]entity.Administrator),
		species:     make(map[uint]entity.SeaweedSpecies),
		nextFarmID:  1,
		nextAdminID: 1,
		nextLogID:   1,
	}
}

func equalEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (s *Store) FindFarmByIdentifier(_ context.Context, identifier string) (*entity.FarmAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(identifier)
	for _, farm := range s.farms {
		if equalEmail(farm.Email, trimmed) || farm.FarmName == trimmed {
			copied := farm
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) FindFarmByEmail(_ context.Context, email string) (*entity.FarmAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, farm := range s.farms {
		if equalEmail(farm.Email, email) {
			copied := farm
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) FindFarmByID(_ context.Context, id uint) (*entity.FarmAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, ok := s.farms[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := farm
	return &copied, nil
}

func (s *Store) ListFarms(_ context.Context) ([]entity.FarmAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farms := make([]entity.FarmAccount, 0, len(s.farms))
	for _, farm := range s.farms {
		farms = append(farms, farm)
	}
	sort.Slice(farms, func(i, j int) bool {
		if farms[i].CreatedAt.Equal(farms[j].CreatedAt) {
			return farms[i].FarmID > farms[j].FarmID
		}
		return farms[i].CreatedAt.After(farms[j].CreatedAt)
	})
	return farms, nil
}

func (s *Store) CreateFarm(_ context.Context, farm *entity.FarmAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.farms {
		if equalEmail(existing.Email, farm.Email) || existing.FarmName == farm.FarmName {
			return model.ErrDuplicate
		}
	}

	now := time.Now().UTC()
	farm.FarmID = s.nextFarmID
	s.nextFarmID++
	if farm.CreatedAt.IsZero() {
		farm.CreatedAt = now
	}
	farm.LastUpdated = now
	if farm.Status == "" {
		farm.Status = entity.StatusUnverified
	}
	s.farms[farm.FarmID] = *farm
	return nil
}

func (s *Store) CountFarms(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.farms)), nil
}

func (s *Store) MarkFarmVerified(_ context.Context, token string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	for id, farm := range s.farms {
		if farm.VerificationToken == nil || *farm.VerificationToken != token {
			continue
		}
		if farm.Status != entity.StatusUnverified {
			continue
		}
		if farm.VerificationExpires != nil && !farm.VerificationExpires.After(now) {
			continue
		}
		farm.Status = entity.StatusActive
		farm.VerificationToken = nil
		farm.VerificationExpires = nil
		farm.LastUpdated = now
		s.farms[id] = farm
		return true, nil
	}
	return false, nil
}

func (s *Store) SetVerificationToken(_ context.Context, farmID uint, token string, expires *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, ok := s.farms[farmID]
	if !ok {
		return model.ErrNotFound
	}
	farm.VerificationToken = &token
	farm.VerificationExpires = expires
	s.farms[farmID] = farm
	return nil
}

func (s *Store) UpdateFarmStatus(_ context.Context, farmID uint, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, ok := s.farms[farmID]
	if !ok {
		return false, nil
	}
	farm.Status = status
	farm.LastUpdated = time.Now().UTC()
	s.farms[farmID] = farm
	return true, nil
}

func (s *Store) DeleteDeactivatedFarm(_ context.Context, farmID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, ok := s.farms[farmID]
	if !ok || farm.Status != entity.StatusDeactivated {
		return false, nil
	}
	delete(s.farms, farmID)
	return true, nil
}

func (s *Store) SetResetToken(_ context.Context, farmID uint, token string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	farm, ok := s.farms[farmID]
	if !ok {
		return model.ErrNotFound
	}
	farm.ResetToken = &token
	farm.ResetExpires = &expires
	s.farms[farmID] = farm
	return nil
}

func (s *Store) FindFarmByResetToken(_ context.Context, token string) (*entity.FarmAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, farm := range s.farms {
		if farm.ResetToken != nil && *farm.ResetToken == token {
			copied := farm
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) ResetFarmPassword(_ context.Context, token, passwordHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(token) == "" || passwordHash == "" {
		return false, nil
	}
	for id, farm := range s.farms {
		if farm.ResetToken == nil || *farm.ResetToken != token {
			continue
		}
		farm.PasswordHash = passwordHash
		farm.ResetToken = nil
		farm.ResetExpires = nil
		farm.LastUpdated = time.Now().UTC()
		s.farms[id] = farm
		return true, nil
	}
	return false, nil
}

func (s *Store) FindAdminByEmail(_ context.Context, email string) (*entity.Administrator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, admin := range s.admins {
		if equalEmail(admin.Email, email) {
			copied := admin
			return &copied, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *Store) CreateAdmin(_ context.Context, admin *entity.Administrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.admins {
		if equalEmail(existing.Email, admin.Email) {
			return model.ErrDuplicate
		}
	}
	admin.AdminID = s.nextAdminID
	s.nextAdminID++
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}
	s.admins[admin.AdminID] = *admin
	return nil
}

func (s *Store) CountAdmins(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.admins)), nil
}

func (s *Store) AppendSystemLog(_ context.Context, record *entity.SystemLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.LogID = s.nextLogID
	s.nextLogID++
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
	s.logs = append(s.logs, *record)
	return nil
}

func (s *Store) QuerySystemLogs(_ context.Context, query *entity.SystemLogQuery) ([]entity.SystemLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]entity.SystemLog, 0, len(s.logs))
	for _, record := range s.logs {
		if query != nil {
			if et := strings.TrimSpace(query.EventType); et != "" && record.EventType != et {
				continue
			}
			if actor := strings.TrimSpace(query.ActorEmail); actor != "" && !strings.Contains(record.ActorEmail, actor) {
				continue
			}
			if target := strings.TrimSpace(query.TargetFarm); target != "" {
				if record.TargetFarm == nil || !strings.Contains(*record.TargetFarm, target) {
					continue
				}
			}
			if start := strings.TrimSpace(query.StartDate); start != "" {
				if bound, err := time.Parse("2006-01-02", start); err == nil && record.Timestamp.Before(bound) {
					continue
				}
			}
			if end := strings.TrimSpace(query.EndDate); end != "" {
				if bound, err := time.Parse("2006-01-02", end); err == nil && record.Timestamp.After(bound.AddDate(0, 0, 1)) {
					continue
				}
			}
		}
		matches = append(matches, record)
	}

	// Newest first; same-timestamp rows keep insertion order.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Timestamp.Equal(matches[j].Timestamp) {
			return matches[i].LogID > matches[j].LogID
		}
		return matches[i].Timestamp.After(matches[j].Timestamp)
	})
	return matches, nil
}

func (s *Store) CountScans(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.freshScans) + len(s.driedScans)), nil
}

func (s *Store) CountScansOn(_ context.Context, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	for _, scan := range s.freshScans {
		if !scan.Timestamp.Before(start) && scan.Timestamp.Before(end) {
			count++
		}
	}
	for _, scan := range s.driedScans {
		if !scan.Timestamp.Before(start) && scan.Timestamp.Before(end) {
			count++
		}
	}
	return count, nil
}

func (s *Store) MonthlyScanTotals(_ context.Context, months int) ([]entity.MonthlyScanTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if months <= 0 {
		months = 6
	}
	cutoff := time.Now().AddDate(0, -months, 0)

	totals := make(map[string]int64)
	for _, scan := range s.freshScans {
		if scan.Timestamp.After(cutoff) {
			totals[scan.Timestamp.Format("2006-01")]++
		}
	}
	for _, scan := range s.driedScans {
		if scan.Timestamp.After(cutoff) {
			totals[scan.Timestamp.Format("2006-01")]++
		}
	}

	result := make([]entity.MonthlyScanTotal, 0, len(totals))
	for month, total := range totals {
		result = append(result, entity.MonthlyScanTotal{Month: month, Total: total})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

func (s *Store) ListSpecies(_ context.Context) ([]entity.SeaweedSpecies, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	species := make([]entity.SeaweedSpecies, 0, len(s.species))
	for _, sp := range s.species {
		species = append(species, sp)
	}
	sort.Slice(species, func(i, j int) bool { return species[i].SpeciesID < species[j].SpeciesID })
	return species, nil
}

// AddSpecies and AddScan seed reference data for tests.

func (s *Store) AddSpecies(sp entity.SeaweedSpecies) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp.SpeciesID == 0 {
		sp.SpeciesID = uint(len(s.species) + 1)
	}
	s.species[sp.SpeciesID] = sp
}

func (s *Store) AddFreshScan(scan entity.ScanReportFresh) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan.ScanID = uint(len(s.freshScans) + 1)
	s.freshScans = append(s.freshScans, scan)
}

func (s *Store) AddDriedScan(scan entity.ScanReportDried) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scan.ScanID = uint(len(s.driedScans) + 1)
	s.driedScans = append(s.driedScans, scan)
}
