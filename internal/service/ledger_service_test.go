package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/budgetbook/budgetbook-backend/internal/domain"
	"github.com/budgetbook/budgetbook-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type ledgerFixture struct {
	users     *testutil.MockUserRepository
	ledgers   *testutil.MockLedgerRepository
	publisher *testutil.MockEventPublisher
	service   *LedgerService
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		users:     testutil.NewMockUserRepository(),
		ledgers:   testutil.NewMockLedgerRepository(),
		publisher: testutil.NewMockEventPublisher(),
	}
	f.service = NewLedgerService(f.users, f.ledgers)
	f.service.hashCost = bcrypt.MinCost
	f.service.SetEventPublisher(f.publisher)
	return f
}

func (f *ledgerFixture) addUser() *domain.User {
	user := &domain.User{ID: uuid.New(), Auth0ID: "auth0|" + uuid.NewString()}
	f.users.AddUser(user)
	f.ledgers.AddLedger(&domain.Ledger{ID: f.ledgers.NextID, Kind: domain.LedgerKindPersonal, OwnerID: user.ID, Name: "Personal"})
	return user
}

func TestRegisterGroup_Success(t *testing.T) {
	f := newLedgerFixture()
	owner := f.addUser()

	group, err := f.service.RegisterGroup(context.Background(), owner.ID, "  Flatmates ", "secret")
	require.NoError(t, err)

	assert.Equal(t, "Flatmates", group.Name)
	assert.Equal(t, domain.LedgerKindGroup, group.Kind)
	assert.Equal(t, int32(1), group.MemberCount)
	assert.NotEqual(t, "secret", group.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(group.PasswordHash), []byte("secret")))

	require.NotNil(t, owner.ActiveLedgerID)
	assert.Equal(t, group.ID, *owner.ActiveLedgerID)
	require.Len(t, f.publisher.Follows, 1)
	assert.Equal(t, group.ID, f.publisher.Follows[0].LedgerID)
}

func TestRegisterGroup_Validation(t *testing.T) {
	f := newLedgerFixture()
	owner := f.addUser()

	tests := []struct {
		name     string
		group    string
		password string
		want     error
	}{
		{"empty name", "   ", "secret", domain.ErrNameRequired},
		{"long name", strings.Repeat("a", domain.MaxGroupNameLength+1), "secret", domain.ErrNameTooLong},
		{"empty password", "Flat", "", domain.ErrPasswordRequired},
		{"short password", "Flat", "abc", domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.RegisterGroup(context.Background(), owner.ID, tt.group, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterGroup_NameTaken(t *testing.T) {
	f := newLedgerFixture()
	a := f.addUser()
	b := f.addUser()

	_, err := f.service.RegisterGroup(context.Background(), a.ID, "Flat", "secret")
	require.NoError(t, err)

	_, err = f.service.RegisterGroup(context.Background(), b.ID, "Flat", "other1")
	assert.ErrorIs(t, err, domain.ErrGroupNameTaken)
	assert.Nil(t, b.ActiveLedgerID)
}

func TestJoinGroup(t *testing.T) {
	f := newLedgerFixture()
	owner := f.addUser()
	joiner := f.addUser()

	group, err := f.service.RegisterGroup(context.Background(), owner.ID, "Flat", "secret")
	require.NoError(t, err)

	t.Run("unknown group", func(t *testing.T) {
		_, err := f.service.JoinGroup(context.Background(), joiner.ID, "Nope", "secret")
		assert.ErrorIs(t, err, domain.ErrLedgerNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.service.JoinGroup(context.Background(), joiner.ID, "Flat", "wrong!")
		assert.ErrorIs(t, err, domain.ErrWrongGroupPassword)
		assert.Equal(t, int32(1), group.MemberCount)
	})

	t.Run("success", func(t *testing.T) {
		joined, err := f.service.JoinGroup(context.Background(), joiner.ID, "Flat", "secret")
		require.NoError(t, err)
		assert.Equal(t, int32(2), joined.MemberCount)
		require.NotNil(t, joiner.ActiveLedgerID)
		assert.Equal(t, group.ID, *joiner.ActiveLedgerID)
		assert.Contains(t, f.publisher.EventTypes(), "group.member_joined")
	})

	t.Run("already member", func(t *testing.T) {
		_, err := f.service.JoinGroup(context.Background(), joiner.ID, "Flat", "secret")
		assert.ErrorIs(t, err, domain.ErrAlreadyMember)
		assert.Equal(t, int32(2), group.MemberCount)
	})
}

func TestListGroups(t *testing.T) {
	f := newLedgerFixture()
	user := f.addUser()

	b, err := f.service.RegisterGroup(context.Background(), user.ID, "Beta", "secret")
	require.NoError(t, err)
	_, err = f.service.RegisterGroup(context.Background(), user.ID, "Alpha", "secret")
	require.NoError(t, err)

	groups, err := f.service.ListGroups(context.Background(), user.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Alpha", groups[0].Name)
	assert.False(t, groups[0].Active)
	assert.Equal(t, "Beta", groups[1].Name)
	assert.True(t, groups[1].Active)

	names, err := f.service.GroupNames(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, names)
}

func TestSelectGroupAndSwitchToPersonal(t *testing.T) {
	f := newLedgerFixture()
	owner := f.addUser()
	stranger := f.addUser()

	group, err := f.service.RegisterGroup(context.Background(), owner.ID, "Flat", "secret")
	require.NoError(t, err)

	_, err = f.service.SelectGroup(context.Background(), stranger.ID, "Flat")
	assert.True(t, errors.Is(err, domain.ErrNotMember))

	personal, err := f.service.SwitchToPersonal(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LedgerKindPersonal, personal.Kind)
	assert.Nil(t, owner.ActiveLedgerID)

	selected, err := f.service.SelectGroup(context.Background(), owner.ID, "Flat")
	require.NoError(t, err)
	assert.Equal(t, group.ID, selected.ID)
	require.NotNil(t, owner.ActiveLedgerID)
	assert.Equal(t, group.ID, *owner.ActiveLedgerID)

	last := f.publisher.Follows[len(f.publisher.Follows)-1]
	assert.Equal(t, owner.ID, last.UserID)
	assert.Equal(t, group.ID, last.LedgerID)
}
