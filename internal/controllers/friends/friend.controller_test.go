package friendController

import (
	"context"
	"testing"

	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repositories.UserRepository
	users map[uuid.UUID]*User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeFriendshipRepo struct {
	repositories.FriendshipRepository
	friendships map[uuid.UUID]*Friendship
}

func newFakeFriendshipRepo() *fakeFriendshipRepo {
	return &fakeFriendshipRepo{friendships: make(map[uuid.UUID]*Friendship)}
}

func (f *fakeFriendshipRepo) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Friendship, error) {
	if friendship, ok := f.friendships[id]; ok {
		return friendship, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFriendshipRepo) GetByPair(
	ctx context.Context,
	tx *gorm.DB,
	userA, userB uuid.UUID,
) (*Friendship, error) {
	for _, friendship := range f.friendships {
		if friendship.Involves(userA) && friendship.Involves(userB) {
			return friendship, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFriendshipRepo) Create(
	ctx context.Context,
	tx *gorm.DB,
	friendship *Friendship,
) error {
	friendship.ID = uuid.New()
	f.friendships[friendship.ID] = friendship
	return nil
}

func (f *fakeFriendshipRepo) Accept(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	friendship, ok := f.friendships[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	friendship.Status = FriendshipAccepted
	return nil
}

func (f *fakeFriendshipRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(f.friendships, id)
	return nil
}

func (f *fakeFriendshipRepo) ListAcceptedByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]Friendship, error) {
	var accepted []Friendship
	for _, friendship := range f.friendships {
		if friendship.Status == FriendshipAccepted && friendship.Involves(userID) {
			accepted = append(accepted, *friendship)
		}
	}
	return accepted, nil
}

type friendFixture struct {
	controller *FriendController
	friendRepo *fakeFriendshipRepo
	userRepo   *fakeUserRepo
}

func newFriendFixture() *friendFixture {
	friendRepo := newFakeFriendshipRepo()
	userRepo := &fakeUserRepo{users: make(map[uuid.UUID]*User)}
	return &friendFixture{
		controller: &FriendController{
			friendshipRepo: friendRepo,
			userRepo:       userRepo,
			db:             database.DB{},
		},
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

func (f *friendFixture) addUser(username string) *User {
	user := &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Username:      username,
		DisplayName:   username,
	}
	f.userRepo.users[user.ID] = user
	return user
}

func (f *friendFixture) befriend(a, b *User) *Friendship {
	friendship := &Friendship{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		InitiatorID:   a.ID,
		RecipientID:   b.ID,
		Initiator:     a,
		Recipient:     b,
		Status:        FriendshipAccepted,
	}
	f.friendRepo.friendships[friendship.ID] = friendship
	return friendship
}

func TestSendRequest_Success(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")
	bob := fixture.addUser("bob")

	friendship, err := fixture.controller.SendRequest(
		context.Background(),
		alice,
		&FriendRequestInput{UserID: bob.ID},
	)
	require.NoError(t, err)
	assert.Equal(t, FriendshipPending, friendship.Status)
	assert.Equal(t, alice.ID, friendship.InitiatorID)
	assert.Equal(t, bob.ID, friendship.RecipientID)
}

func TestSendRequest_ToSelf(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")

	_, err := fixture.controller.SendRequest(
		context.Background(),
		alice,
		&FriendRequestInput{UserID: alice.ID},
	)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSendRequest_DuplicateEitherDirection(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")
	bob := fixture.addUser("bob")

	_, err := fixture.controller.SendRequest(
		context.Background(),
		alice,
		&FriendRequestInput{UserID: bob.ID},
	)
	require.NoError(t, err)

	_, err = fixture.controller.SendRequest(
		context.Background(),
		bob,
		&FriendRequestInput{UserID: alice.ID},
	)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAcceptRequest_OnlyRecipient(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")
	bob := fixture.addUser("bob")

	friendship, err := fixture.controller.SendRequest(
		context.Background(),
		alice,
		&FriendRequestInput{UserID: bob.ID},
	)
	require.NoError(t, err)

	_, err = fixture.controller.AcceptRequest(context.Background(), alice, friendship.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	accepted, err := fixture.controller.AcceptRequest(context.Background(), bob, friendship.ID)
	require.NoError(t, err)
	assert.Equal(t, FriendshipAccepted, accepted.Status)
}

func TestRemoveFriendship_Uninvolved(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")
	bob := fixture.addUser("bob")
	carol := fixture.addUser("carol")
	friendship := fixture.befriend(alice, bob)

	err := fixture.controller.RemoveFriendship(context.Background(), carol, friendship.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = fixture.controller.RemoveFriendship(context.Background(), bob, friendship.ID)
	require.NoError(t, err)
}

func TestCheckFriendship(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")
	bob := fixture.addUser("bob")
	carol := fixture.addUser("carol")
	fixture.befriend(alice, bob)

	status, err := fixture.controller.CheckFriendship(context.Background(), alice, bob.ID)
	require.NoError(t, err)
	assert.True(t, status.AreFriends)
	require.NotNil(t, status.Status)
	assert.Equal(t, FriendshipAccepted, *status.Status)

	status, err = fixture.controller.CheckFriendship(context.Background(), alice, carol.ID)
	require.NoError(t, err)
	assert.False(t, status.AreFriends)
	assert.Nil(t, status.Status)
}

func TestMutualFriends(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")
	bob := fixture.addUser("bob")
	carol := fixture.addUser("carol")
	dave := fixture.addUser("dave")

	fixture.befriend(alice, carol)
	fixture.befriend(bob, carol)
	fixture.befriend(alice, dave)

	mutual, err := fixture.controller.MutualFriends(context.Background(), alice, bob.ID)
	require.NoError(t, err)
	require.Len(t, mutual, 1)
	assert.Equal(t, "carol", mutual[0].Username)
}

func TestMutualFriends_UnknownUser(t *testing.T) {
	fixture := newFriendFixture()
	alice := fixture.addUser("alice")

	_, err := fixture.controller.MutualFriends(context.Background(), alice, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
