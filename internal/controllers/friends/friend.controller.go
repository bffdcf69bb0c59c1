package friendController

import (
	"context"
	"errors"

	"gamehub/config"
	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"gamehub/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

type FriendController struct {
	friendshipRepo repositories.FriendshipRepository
	userRepo       repositories.UserRepository
	db             database.DB
	Config         config.Config
}

type FriendRequestInput struct {
	UserID uuid.UUID `json:"userId"`
}

// FriendView is the shape returned for an accepted friendship: the other
// party plus when the friendship was established.
type FriendView struct {
	FriendshipID uuid.UUID     `json:"friendshipId"`
	Friend       PublicProfile `json:"friend"`
}

type PendingRequestView struct {
	FriendshipID uuid.UUID     `json:"friendshipId"`
	Initiator    PublicProfile `json:"initiator"`
}

type SentRequestView struct {
	FriendshipID uuid.UUID     `json:"friendshipId"`
	Recipient    PublicProfile `json:"recipient"`
}

// FriendshipStatusView reports where two users stand with each other.
type FriendshipStatusView struct {
	Status       *FriendshipStatus `json:"status,omitempty"`
	FriendshipID *uuid.UUID        `json:"friendshipId,omitempty"`
	AreFriends   bool              `json:"areFriends"`
}

type FriendControllerInterface interface {
	SendRequest(ctx context.Context, user *User, request *FriendRequestInput) (*Friendship, error)
	AcceptRequest(ctx context.Context, user *User, friendshipID uuid.UUID) (*Friendship, error)
	RemoveFriendship(ctx context.Context, user *User, friendshipID uuid.UUID) error
	ListFriends(ctx context.Context, user *User) ([]FriendView, error)
	ListPendingRequests(ctx context.Context, user *User) ([]PendingRequestView, error)
	ListSentRequests(ctx context.Context, user *User) ([]SentRequestView, error)
	CheckFriendship(ctx context.Context, user *User, otherID uuid.UUID) (*FriendshipStatusView, error)
	MutualFriends(ctx context.Context, user *User, otherID uuid.UUID) ([]PublicProfile, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) FriendControllerInterface {
	return &FriendController{
		friendshipRepo: repos.Friendship,
		userRepo:       repos.User,
		db:             db,
		Config:         config,
	}
}

func (c *FriendController) SendRequest(
	ctx context.Context,
	user *User,
	request *FriendRequestInput,
) (*Friendship, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("SendRequest")

	if request.UserID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	if request.UserID == user.ID {
		return nil, log.ErrorWithType(ErrValidation, "cannot send a friend request to yourself")
	}

	if _, err := c.userRepo.GetByID(ctx, c.db.SQL, request.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", request.UserID)
		}
		return nil, log.Error("failed to look up user", "error", err)
	}

	if _, err := c.friendshipRepo.GetByPair(ctx, c.db.SQL, user.ID, request.UserID); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "friendship or request already exists", "userID", request.UserID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check existing friendship", "error", err)
	}

	friendship := &Friendship{
		InitiatorID: user.ID,
		RecipientID: request.UserID,
		Status:      FriendshipPending,
	}

	if err := c.friendshipRepo.Create(ctx, c.db.SQL, friendship); err != nil {
		return nil, log.Error("failed to create friend request", "error", err, "userID", request.UserID)
	}

	log.Info("Friend request sent", "initiatorID", user.ID, "recipientID", request.UserID)

	return friendship, nil
}

// AcceptRequest accepts a pending request. Only the recipient may accept.
func (c *FriendController) AcceptRequest(
	ctx context.Context,
	user *User,
	friendshipID uuid.UUID,
) (*Friendship, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("AcceptRequest")

	if friendshipID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "friendshipId is required")
	}

	friendship, err := c.friendshipRepo.GetByID(ctx, c.db.SQL, friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "friend request not found", "friendshipID", friendshipID)
		}
		return nil, log.Error("failed to load friendship", "error", err)
	}

	if friendship.RecipientID != user.ID {
		return nil, log.ErrorWithType(ErrForbidden, "only the recipient can accept a request", "friendshipID", friendshipID)
	}

	if friendship.Status != FriendshipPending {
		return nil, log.ErrorWithType(ErrValidation, "request is not pending", "friendshipID", friendshipID)
	}

	if err := c.friendshipRepo.Accept(ctx, c.db.SQL, friendshipID); err != nil {
		return nil, log.Error("failed to accept friend request", "error", err, "friendshipID", friendshipID)
	}

	friendship.Status = FriendshipAccepted

	log.Info("Friend request accepted", "userID", user.ID, "friendshipID", friendshipID)

	return friendship, nil
}

// RemoveFriendship declines a pending request or removes an accepted friend.
// Either party may remove it.
func (c *FriendController) RemoveFriendship(
	ctx context.Context,
	user *User,
	friendshipID uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "friendController").Function("RemoveFriendship")

	if friendshipID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "friendshipId is required")
	}

	friendship, err := c.friendshipRepo.GetByID(ctx, c.db.SQL, friendshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "friendship not found", "friendshipID", friendshipID)
		}
		return log.Error("failed to load friendship", "error", err)
	}

	if !friendship.Involves(user.ID) && !user.IsAdmin() {
		return log.ErrorWithType(ErrForbidden, "friendship does not involve user", "friendshipID", friendshipID)
	}

	if err := c.friendshipRepo.Delete(ctx, c.db.SQL, friendshipID); err != nil {
		return log.Error("failed to delete friendship", "error", err, "friendshipID", friendshipID)
	}

	log.Info("Friendship removed", "userID", user.ID, "friendshipID", friendshipID)

	return nil
}

func (c *FriendController) ListFriends(ctx context.Context, user *User) ([]FriendView, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("ListFriends")

	friendships, err := c.friendshipRepo.ListAcceptedByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Error("failed to list friends", "error", err, "userID", user.ID)
	}

	friends := make([]FriendView, 0, len(friendships))
	for i := range friendships {
		other := friendships[i].Recipient
		if friendships[i].OtherParty(user.ID) == friendships[i].InitiatorID {
			other = friendships[i].Initiator
		}
		if other == nil {
			continue
		}
		friends = append(friends, FriendView{
			FriendshipID: friendships[i].ID,
			Friend:       other.ToPublicProfile(),
		})
	}

	return friends, nil
}

func (c *FriendController) ListPendingRequests(
	ctx context.Context,
	user *User,
) ([]PendingRequestView, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("ListPendingRequests")

	pending, err := c.friendshipRepo.ListPendingForUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Error("failed to list pending requests", "error", err, "userID", user.ID)
	}

	requests := make([]PendingRequestView, 0, len(pending))
	for i := range pending {
		if pending[i].Initiator == nil {
			continue
		}
		requests = append(requests, PendingRequestView{
			FriendshipID: pending[i].ID,
			Initiator:    pending[i].Initiator.ToPublicProfile(),
		})
	}

	return requests, nil
}

func (c *FriendController) ListSentRequests(
	ctx context.Context,
	user *User,
) ([]SentRequestView, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("ListSentRequests")

	sent, err := c.friendshipRepo.ListSentByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Error("failed to list sent requests", "error", err, "userID", user.ID)
	}

	requests := make([]SentRequestView, 0, len(sent))
	for i := range sent {
		if sent[i].Recipient == nil {
			continue
		}
		requests = append(requests, SentRequestView{
			FriendshipID: sent[i].ID,
			Recipient:    sent[i].Recipient.ToPublicProfile(),
		})
	}

	return requests, nil
}

// CheckFriendship reports the relationship between the current user and
// another user, in either direction.
func (c *FriendController) CheckFriendship(
	ctx context.Context,
	user *User,
	otherID uuid.UUID,
) (*FriendshipStatusView, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("CheckFriendship")

	if otherID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	friendship, err := c.friendshipRepo.GetByPair(ctx, c.db.SQL, user.ID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &FriendshipStatusView{}, nil
		}
		return nil, log.Error("failed to check friendship", "error", err, "otherID", otherID)
	}

	return &FriendshipStatusView{
		Status:       &friendship.Status,
		FriendshipID: &friendship.ID,
		AreFriends:   friendship.Status == FriendshipAccepted,
	}, nil
}

// MutualFriends intersects the accepted friend lists of both users.
func (c *FriendController) MutualFriends(
	ctx context.Context,
	user *User,
	otherID uuid.UUID,
) ([]PublicProfile, error) {
	log := logger.NewWithContext(ctx, "friendController").Function("MutualFriends")

	if otherID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	if _, err := c.userRepo.GetByID(ctx, c.db.SQL, otherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", otherID)
		}
		return nil, log.Error("failed to look up user", "error", err)
	}

	mine, err := c.friendshipRepo.ListAcceptedByUser(ctx, c.db.SQL, user.ID)
	if err != nil {
		return nil, log.Error("failed to list friends", "error", err, "userID", user.ID)
	}

	theirs, err := c.friendshipRepo.ListAcceptedByUser(ctx, c.db.SQL, otherID)
	if err != nil {
		return nil, log.Error("failed to list friends", "error", err, "userID", otherID)
	}

	theirIDs := make(map[uuid.UUID]bool, len(theirs))
	for i := range theirs {
		theirIDs[theirs[i].OtherParty(otherID)] = true
	}

	mutual := make([]PublicProfile, 0)
	for i := range mine {
		friendID := mine[i].OtherParty(user.ID)
		if !theirIDs[friendID] || friendID == otherID {
			continue
		}
		other := mine[i].Recipient
		if friendID == mine[i].InitiatorID {
			other = mine[i].Initiator
		}
		if other == nil {
			continue
		}
		mutual = append(mutual, other.ToPublicProfile())
	}

	return mutual, nil
}
