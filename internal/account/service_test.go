package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"aqualeaf/internal/audit"
	"aqualeaf/internal/auth"
	"aqualeaf/internal/entity"
	"aqualeaf/internal/model/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	verifications []string
	resets        []string
	tokens        []string
	fail          bool
}

func (m *fakeMailer) SendVerification(_ context.Context, email, token string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.verifications = append(m.verifications, email)
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, email, token string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.resets = append(m.resets, email)
	m.tokens = append(m.tokens, token)
	return nil
}

func newTestService(t *testing.T) (*Service, *memory.Store, *fakeMailer) {
	t.Helper()
	store := memory.NewStore()
	mail := &fakeMailer{}
	sessions, err := auth.NewManager("test-secret", "aqualeaf-test", time.Hour)
	require.NoError(t, err)
	svc := NewService(store, audit.NewRecorder(store), mail, sessions, Options{
		BcryptCost: 4,
		ResetTTL:   time.Hour,
	})
	return svc, store, mail
}

func registerFarm(t *testing.T, svc *Service, mail *fakeMailer) string {
	t.Helper()
	_, err := svc.Register(context.Background(), entity.RegisterRequest{
		FarmName: "FarmA",
		Location: "Palawan",
		Email:    "a@x.com",
		Password: "password1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, mail.tokens)
	return mail.tokens[len(mail.tokens)-1]
}

func activateFarm(t *testing.T, svc *Service, mail *fakeMailer) {
	t.Helper()
	token := registerFarm(t, svc, mail)
	require.NoError(t, svc.Verify(context.Background(), token))
}

func eventTypes(t *testing.T, store *memory.Store) []string {
	t.Helper()
	logs, err := store.QuerySystemLogs(context.Background(), nil)
	require.NoError(t, err)
	types := make([]string, 0, len(logs))
	for _, l := range logs {
		types = append(types, l.EventType)
	}
	return types
}

func TestRegisterVerifyLoginLifecycle(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, entity.RegisterRequest{
		FarmName: "FarmA", Location: "Palawan", Email: "a@x.com", Password: "password1",
	})
	require.NoError(t, err)
	assert.True(t, result.EmailSent)

	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUnverified, farm.Status)
	require.NotNil(t, farm.VerificationToken)

	// Unverified accounts cannot authenticate even with the right password.
	_, err = svc.Login(ctx, "a@x.com", "password1")
	var notVerified *NotVerifiedError
	require.ErrorAs(t, err, &notVerified)
	assert.Equal(t, "a@x.com", notVerified.Email)
	// The unverified outcome is not audited.
	assert.Empty(t, eventTypes(t, store))

	token := *farm.VerificationToken
	require.NoError(t, svc.Verify(ctx, token))

	farm, err = store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, farm.Status)
	assert.Nil(t, farm.VerificationToken)

	// A consumed verification token is gone for good.
	assert.ErrorIs(t, svc.Verify(ctx, token), ErrInvalidToken)

	login, err := svc.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, []string{entity.EventLoginFarm}, eventTypes(t, store))
}

func TestRegisterDuplicateIdentity(t *testing.T) {
	svc, _, mail := newTestService(t)
	ctx := context.Background()
	registerFarm(t, svc, mail)

	_, err := svc.Register(ctx, entity.RegisterRequest{
		FarmName: "FarmB", Location: "Cebu", Email: "a@x.com", Password: "password1",
	})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Register(ctx, entity.RegisterRequest{
		FarmName: "FarmA", Location: "Cebu", Email: "b@x.com", Password: "password1",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegisterMailFailureIsNotFatal(t *testing.T) {
	svc, store, mail := newTestService(t)
	mail.fail = true

	result, err := svc.Register(context.Background(), entity.RegisterRequest{
		FarmName: "FarmA", Location: "Palawan", Email: "a@x.com", Password: "password1",
	})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)

	// The account exists despite the delivery failure.
	_, err = store.FindFarmByEmail(context.Background(), "a@x.com")
	assert.NoError(t, err)
}

func TestLoginPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown identity", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		_, err := svc.Login(ctx, "ghost@x.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredential)

		logs, err := store.QuerySystemLogs(ctx, nil)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, entity.EventLoginFarmFailed, logs[0].EventType)
		// Actor is the submitted identifier, not a resolved account.
		assert.Equal(t, "ghost@x.com", logs[0].ActorEmail)
		assert.Nil(t, logs[0].TargetFarm)
	})

	t.Run("wrong password beats status gate", func(t *testing.T) {
		svc, store, mail := newTestService(t)
		activateFarm(t, svc, mail)
		farm, err := store.FindFarmByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		_, err = store.UpdateFarmStatus(ctx, farm.FarmID, entity.StatusSuspended)
		require.NoError(t, err)

		// Suspended and wrong password: the credential check wins.
		_, err = svc.Login(ctx, "a@x.com", "wrongpass")
		assert.ErrorIs(t, err, ErrInvalidCredential)

		logs, err := store.QuerySystemLogs(ctx, &entity.SystemLogQuery{EventType: entity.EventLoginFarmFailed})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "a@x.com", logs[0].ActorEmail)
		require.NotNil(t, logs[0].TargetFarm)
		assert.Equal(t, "FarmA", *logs[0].TargetFarm)
	})

	t.Run("suspended", func(t *testing.T) {
		svc, store, mail := newTestService(t)
		activateFarm(t, svc, mail)
		farm, err := store.FindFarmByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		_, err = store.UpdateFarmStatus(ctx, farm.FarmID, entity.StatusSuspended)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "a@x.com", "password1")
		assert.ErrorIs(t, err, ErrSuspended)

		logs, err := store.QuerySystemLogs(ctx, &entity.SystemLogQuery{EventType: entity.EventLoginFarmBlocked})
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})

	t.Run("deactivated", func(t *testing.T) {
		svc, store, mail := newTestService(t)
		activateFarm(t, svc, mail)
		farm, err := store.FindFarmByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		_, err = store.UpdateFarmStatus(ctx, farm.FarmID, entity.StatusDeactivated)
		require.NoError(t, err)

		_, err = svc.Login(ctx, "a@x.com", "password1")
		assert.ErrorIs(t, err, ErrDeactivated)
	})

	t.Run("login by farm name", func(t *testing.T) {
		svc, _, mail := newTestService(t)
		activateFarm(t, svc, mail)
		_, err := svc.Login(ctx, "FarmA", "password1")
		assert.NoError(t, err)
	})
}

func TestAdminLoginCollapsesFailures(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("adminpass", 4)
	require.NoError(t, err)
	require.NoError(t, store.CreateAdmin(ctx, &entity.Administrator{
		Username: "admin", Email: "admin@x.com", PasswordHash: hash,
	}))

	_, err = svc.AdminLogin(ctx, "nobody@x.com", "adminpass")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, err = svc.AdminLogin(ctx, "admin@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	logs, err := store.QuerySystemLogs(ctx, &entity.SystemLogQuery{EventType: entity.EventLoginAdminFailed})
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	login, err := svc.AdminLogin(ctx, "admin@x.com", "adminpass")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	logs, err = store.QuerySystemLogs(ctx, &entity.SystemLogQuery{EventType: entity.EventLoginAdmin})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestResendVerificationRotatesToken(t *testing.T) {
	svc, _, mail := newTestService(t)
	ctx := context.Background()
	first := registerFarm(t, svc, mail)

	require.NoError(t, svc.ResendVerification(ctx, "a@x.com"))
	second := mail.tokens[len(mail.tokens)-1]
	require.NotEqual(t, first, second)

	// The rotated-out token no longer verifies; the fresh one does.
	assert.ErrorIs(t, svc.Verify(ctx, first), ErrInvalidToken)
	assert.NoError(t, svc.Verify(ctx, second))

	assert.ErrorIs(t, svc.ResendVerification(ctx, "a@x.com"), ErrAlreadyVerified)
	assert.ErrorIs(t, svc.ResendVerification(ctx, "ghost@x.com"), ErrNotFound)
}

func TestResendVerificationMailFailureSurfaces(t *testing.T) {
	svc, _, mail := newTestService(t)
	registerFarm(t, svc, mail)
	mail.fail = true
	assert.ErrorIs(t, svc.ResendVerification(context.Background(), "a@x.com"), ErrMailDelivery)
}

func TestVerificationTokenOptionalExpiry(t *testing.T) {
	store := memory.NewStore()
	mail := &fakeMailer{}
	sessions, err := auth.NewManager("test-secret", "aqualeaf-test", time.Hour)
	require.NoError(t, err)
	svc := NewService(store, audit.NewRecorder(store), mail, sessions, Options{
		BcryptCost:      4,
		VerificationTTL: time.Minute,
	})
	ctx := context.Background()

	token := registerFarm(t, svc, mail)
	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, farm.VerificationExpires)

	// Age the token past its window.
	expired := time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.SetVerificationToken(ctx, farm.FarmID, token, &expired))
	assert.ErrorIs(t, svc.Verify(ctx, token), ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, store, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)

	// Unknown and known emails behave identically.
	require.NoError(t, svc.RequestPasswordReset(ctx, "ghost@x.com"))
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	token := mail.tokens[len(mail.tokens)-1]

	require.NoError(t, svc.ResetPassword(ctx, token, "newpassword1"))

	// Old credential rejected, new one accepted.
	_, err := svc.Login(ctx, "a@x.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	_, err = svc.Login(ctx, "a@x.com", "newpassword1")
	assert.NoError(t, err)

	// Replay fails.
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "anotherpass1"), ErrInvalidToken)

	// Stored token and expiry are gone.
	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, farm.ResetToken)
	assert.Nil(t, farm.ResetExpires)
}

func TestPasswordResetReissueInvalidatesPrior(t *testing.T) {
	svc, _, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	first := mail.tokens[len(mail.tokens)-1]
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	second := mail.tokens[len(mail.tokens)-1]
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, svc.ResetPassword(ctx, first, "newpassword1"), ErrInvalidToken)
	assert.NoError(t, svc.ResetPassword(ctx, second, "newpassword1"))
}

func TestPasswordResetExpiry(t *testing.T) {
	svc, store, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)

	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NoError(t, store.SetResetToken(ctx, farm.FarmID, "stale-token", time.Now().Add(-time.Minute)))

	assert.ErrorIs(t, svc.ResetPassword(ctx, "stale-token", "newpassword1"), ErrExpired)
}

func TestPasswordResetMailFailureSwallowed(t *testing.T) {
	svc, store, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)
	mail.fail = true

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))

	// The token is persisted even though delivery failed.
	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotNil(t, farm.ResetToken)
}

func TestChangeStatusTransitions(t *testing.T) {
	svc, store, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)
	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(ctx, "admin@x.com", farm.FarmID, ActionSuspend))
	farm, _ = store.FindFarmByEmail(ctx, "a@x.com")
	assert.Equal(t, entity.StatusSuspended, farm.Status)

	require.NoError(t, svc.ChangeStatus(ctx, "admin@x.com", farm.FarmID, ActionReinstate))
	farm, _ = store.FindFarmByEmail(ctx, "a@x.com")
	assert.Equal(t, entity.StatusActive, farm.Status)

	require.NoError(t, svc.ChangeStatus(ctx, "admin@x.com", farm.FarmID, ActionDeactivate))
	farm, _ = store.FindFarmByEmail(ctx, "a@x.com")
	assert.Equal(t, entity.StatusDeactivated, farm.Status)

	assert.ErrorIs(t, svc.ChangeStatus(ctx, "admin@x.com", farm.FarmID, "promote"), ErrInvalidAction)
	assert.ErrorIs(t, svc.ChangeStatus(ctx, "admin@x.com", 9999, ActionSuspend), ErrNotFound)

	logs, err := store.QuerySystemLogs(ctx, nil)
	require.NoError(t, err)
	var events []string
	for _, l := range logs {
		events = append(events, l.EventType)
	}
	assert.Contains(t, events, entity.EventSuspendFarm)
	assert.Contains(t, events, entity.EventReinstateFarm)
	assert.Contains(t, events, entity.EventDeactivateFarm)
	for _, l := range logs {
		if l.EventType == entity.EventSuspendFarm {
			assert.Equal(t, "admin@x.com", l.ActorEmail)
			require.NotNil(t, l.TargetFarm)
			assert.Equal(t, "FarmA", *l.TargetFarm)
		}
	}
}

func TestHardDeleteGuardedToDeactivated(t *testing.T) {
	svc, store, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)
	farm, err := store.FindFarmByEmail(ctx, "a@x.com")
	require.NoError(t, err)

	// Active accounts are not deletable.
	assert.ErrorIs(t, svc.HardDelete(ctx, "admin@x.com", farm.FarmID), ErrNotFound)
	_, err = store.FindFarmByEmail(ctx, "a@x.com")
	assert.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(ctx, "admin@x.com", farm.FarmID, ActionSuspend))
	assert.ErrorIs(t, svc.HardDelete(ctx, "admin@x.com", farm.FarmID), ErrNotFound)

	require.NoError(t, svc.ChangeStatus(ctx, "admin@x.com", farm.FarmID, ActionDeactivate))
	require.NoError(t, svc.HardDelete(ctx, "admin@x.com", farm.FarmID))

	_, err = store.FindFarmByEmail(ctx, "a@x.com")
	assert.Error(t, err)

	logs, err := store.QuerySystemLogs(ctx, &entity.SystemLogQuery{EventType: entity.EventDeleteFarm})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].TargetFarm)
	assert.Equal(t, "farm_id:1", *logs[0].TargetFarm)
}

func TestListAccounts(t *testing.T) {
	svc, _, mail := newTestService(t)
	ctx := context.Background()
	activateFarm(t, svc, mail)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "FarmA", accounts[0].FarmName)
	assert.Equal(t, entity.StatusActive, accounts[0].Status)
}
