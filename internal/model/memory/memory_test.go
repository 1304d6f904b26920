package memory

import (
	"context"
	"testing"
	"time"

	"aqualeaf/internal/entity"
	"aqualeaf/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFarm(t *testing.T, s *Store, token string) *entity.FarmAccount {
	t.Helper()
	farm := &entity.FarmAccount{
		FarmName:          "FarmA",
		Location:          "Palawan",
		Email:             "a@x.com",
		PasswordHash:      "digest",
		Status:            entity.StatusUnverified,
		VerificationToken: &token,
	}
	require.NoError(t, s.CreateFarm(context.Background(), farm))
	return farm
}

func TestCreateFarmDuplicate(t *testing.T) {
	s := NewStore()
	seedFarm(t, s, "tok")

	err := s.CreateFarm(context.Background(), &entity.FarmAccount{
		FarmName: "FarmB", Email: "A@X.COM", PasswordHash: "digest",
	})
	assert.ErrorIs(t, err, model.ErrDuplicate)

	err = s.CreateFarm(context.Background(), &entity.FarmAccount{
		FarmName: "FarmA", Email: "b@x.com", PasswordHash: "digest",
	})
	assert.ErrorIs(t, err, model.ErrDuplicate)
}

func TestFindFarmByIdentifier(t *testing.T) {
	s := NewStore()
	seedFarm(t, s, "tok")
	ctx := context.Background()

	byEmail, err := s.FindFarmByIdentifier(ctx, "A@x.Com")
	require.NoError(t, err)
	assert.Equal(t, "FarmA", byEmail.FarmName)

	byName, err := s.FindFarmByIdentifier(ctx, "FarmA")
	require.NoError(t, err)
	assert.Equal(t, byEmail.FarmID, byName.FarmID)

	_, err = s.FindFarmByIdentifier(ctx, "nothing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestMarkFarmVerifiedSingleUse(t *testing.T) {
	s := NewStore()
	seedFarm(t, s, "tok")
	ctx := context.Background()
	now := time.Now().UTC()

	ok, err := s.MarkFarmVerified(ctx, "tok", now)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same token again: the account is no longer unverified.
	ok, err = s.MarkFarmVerified(ctx, "tok", now)
	require.NoError(t, err)
	assert.False(t, ok)

	farm, err := s.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, farm.Status)
	assert.Nil(t, farm.VerificationToken)
}

func TestMarkFarmVerifiedRespectsExpiry(t *testing.T) {
	s := NewStore()
	farm := seedFarm(t, s, "tok")
	ctx := context.Background()

	stale := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, s.SetVerificationToken(ctx, farm.FarmID, "tok", &stale))

	ok, err := s.MarkFarmVerified(ctx, "tok", time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResetFarmPasswordGuardedByToken(t *testing.T) {
	s := NewStore()
	farm := seedFarm(t, s, "tok")
	ctx := context.Background()

	require.NoError(t, s.SetResetToken(ctx, farm.FarmID, "reset-tok", time.Now().Add(time.Hour)))

	ok, err := s.ResetFarmPassword(ctx, "reset-tok", "new-digest")
	require.NoError(t, err)
	assert.True(t, ok)

	// Token consumed with the credential update.
	ok, err = s.ResetFarmPassword(ctx, "reset-tok", "other-digest")
	require.NoError(t, err)
	assert.False(t, ok)

	updated, err := s.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new-digest", updated.PasswordHash)
	assert.Nil(t, updated.ResetToken)
	assert.Nil(t, updated.ResetExpires)
}

func TestDeleteDeactivatedFarmGuard(t *testing.T) {
	s := NewStore()
	farm := seedFarm(t, s, "tok")
	ctx := context.Background()

	ok, err := s.DeleteDeactivatedFarm(ctx, farm.FarmID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.UpdateFarmStatus(ctx, farm.FarmID, entity.StatusDeactivated)
	require.NoError(t, err)

	ok, err = s.DeleteDeactivatedFarm(ctx, farm.FarmID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.FindFarmByID(ctx, farm.FarmID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestScanStatistics(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	s.AddFreshScan(entity.ScanReportFresh{FarmID: 1, SpeciesID: 1, Timestamp: now})
	s.AddFreshScan(entity.ScanReportFresh{FarmID: 1, SpeciesID: 1, Timestamp: now.AddDate(0, 0, -35)})
	s.AddDriedScan(entity.ScanReportDried{FarmID: 1, SpeciesID: 1, Timestamp: now})

	total, err := s.CountScans(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	today, err := s.CountScansOn(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, today)

	monthly, err := s.MonthlyScanTotals(ctx, 6)
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, now.Format("2006-01"), monthly[len(monthly)-1].Month)
}
