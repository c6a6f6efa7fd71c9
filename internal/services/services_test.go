package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mroshb/friends_api/internal/database"
	"github.com/mroshb/friends_api/internal/friendship"
	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/internal/repositories"
	"github.com/mroshb/friends_api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test_secret_key_minimum_32_chars"

var fixedNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

type fixture struct {
	db      *gorm.DB
	users   *repositories.UserRepository
	friends *FriendService
	posts   *PostService
	accts   *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repositories.NewUserRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	postRepo := repositories.NewPostRepository(db)

	friends := NewFriendService(friendRepo, userRepo, func() time.Time { return fixedNow })
	return &fixture{
		db:      db,
		users:   userRepo,
		friends: friends,
		posts:   NewPostService(postRepo, userRepo, friendRepo),
		accts:   NewUserService(userRepo, friends, testSecret),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", Password: "hash"}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) edgeCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Friend{}).Count(&count).Error)
	return count
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errors.As(err).Code)
}

func TestSendRequest_TwiceCreatesOneEdge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user(t, "a"), f.user(t, "b")

	first, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, first.ConfirmedAt)
	assert.Equal(t, friendship.StatePending, friendship.StateOf(first))

	second, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	inverse, err := f.friends.SendRequest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, inverse.ID)

	assert.EqualValues(t, 1, f.edgeCount(t))
}

func TestSendRequest_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a")

	_, err := f.friends.SendRequest(context.Background(), a.ID, 112)
	assertCode(t, err, errors.ErrCodeUserNotFound)
	assert.EqualValues(t, 0, f.edgeCount(t))
}

func TestSendRequest_Self(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a")

	_, err := f.friends.SendRequest(context.Background(), a.ID, a.ID)
	assertCode(t, err, errors.ErrCodeValidation)
	assert.Contains(t, errors.As(err).Meta, "friend_id")
	assert.EqualValues(t, 0, f.edgeCount(t))
}

func TestSendRequest_SelfRejectedBeforeStoreAccess(t *testing.T) {
	f := newFixture(t)

	// 77 is not a stored user; the self check must win over the lookup.
	_, err := f.friends.SendRequest(context.Background(), 77, 77)
	assertCode(t, err, errors.ErrCodeValidation)
	assert.Contains(t, errors.As(err).Meta, "friend_id")
}

func TestRespondToRequest_Confirms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user(t, "a"), f.user(t, "b")

	_, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	edge, err := f.friends.RespondToRequest(ctx, b.ID, a.ID, models.FriendStatusConfirmed)
	require.NoError(t, err)
	require.NotNil(t, edge.ConfirmedAt)
	assert.True(t, edge.ConfirmedAt.Equal(fixedNow))
	assert.Equal(t, a.ID, edge.UserID)
	assert.Equal(t, b.ID, edge.FriendID)

	stored, err := f.friends.ResolveFriendship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, friendship.StateConfirmed, friendship.StateOf(stored))
	assert.True(t, stored.ConfirmedAt.Equal(fixedNow))

	_, err = f.friends.RespondToRequest(ctx, b.ID, a.ID, models.FriendStatusConfirmed)
	assertCode(t, err, errors.ErrCodeFriendRequestNotFound)
}

func TestRespondToRequest_OnlyRecipient(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, c := f.user(t, "a"), f.user(t, "b"), f.user(t, "c")

	_, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		caller uint
		sender uint
	}{
		{name: "Unrelated user", caller: c.ID, sender: a.ID},
		{name: "Original requester", caller: a.ID, sender: b.ID},
		{name: "Requester naming self", caller: a.ID, sender: a.ID},
		{name: "No such request", caller: b.ID, sender: 123},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.friends.RespondToRequest(ctx, tt.caller, tt.sender, models.FriendStatusConfirmed)
			assertCode(t, err, errors.ErrCodeFriendRequestNotFound)

			err = f.friends.IgnoreRequest(ctx, tt.caller, tt.sender)
			assertCode(t, err, errors.ErrCodeFriendRequestNotFound)
		})
	}

	edge, err := f.friends.ResolveFriendship(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, edge)
	assert.Nil(t, edge.Status)
	assert.Nil(t, edge.ConfirmedAt)
}

func TestRespondToRequest_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user(t, "a"), f.user(t, "b")

	_, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	_, err = f.friends.RespondToRequest(ctx, b.ID, a.ID, 2)
	assertCode(t, err, errors.ErrCodeValidation)
}

func TestIgnoreRequest_DeletesEdge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user(t, "a"), f.user(t, "b")

	_, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, f.friends.IgnoreRequest(ctx, b.ID, a.ID))

	edge, err := f.friends.ResolveFriendship(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, edge)
	assert.EqualValues(t, 0, f.edgeCount(t))

	// A fresh request is possible after an ignore.
	_, err = f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
}

func TestIgnoreRequest_ConfirmedEdgeStays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user(t, "a"), f.user(t, "b")

	_, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.friends.RespondToRequest(ctx, b.ID, a.ID, models.FriendStatusConfirmed)
	require.NoError(t, err)

	err = f.friends.IgnoreRequest(ctx, b.ID, a.ID)
	assertCode(t, err, errors.ErrCodeFriendRequestNotFound)
	assert.EqualValues(t, 1, f.edgeCount(t))
}

func TestResolveFriendship_Symmetric(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		inverse bool
	}{
		{name: "Viewer sent the request"},
		{name: "Profile owner sent the request", inverse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			viewer, owner := f.user(t, "viewer"), f.user(t, "owner")

			from, to := viewer, owner
			if tt.inverse {
				from, to = owner, viewer
			}
			_, err := f.friends.SendRequest(ctx, from.ID, to.ID)
			require.NoError(t, err)
			_, err = f.friends.RespondToRequest(ctx, to.ID, from.ID, models.FriendStatusConfirmed)
			require.NoError(t, err)

			profile, err := f.accts.GetProfile(ctx, viewer.ID, owner.ID)
			require.NoError(t, err)
			require.NotNil(t, profile.Friendship)
			assert.Equal(t, friendship.StateConfirmed, friendship.StateOf(profile.Friendship))
		})
	}
}

func TestGetProfile_UnknownUser(t *testing.T) {
	f := newFixture(t)
	a := f.user(t, "a")

	_, err := f.accts.GetProfile(context.Background(), a.ID, 999)
	assertCode(t, err, errors.ErrCodeUserNotFound)
}

func TestListPosts_OwnPostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user(t, "a"), f.user(t, "b")

	_, err := f.friends.SendRequest(ctx, a.ID, b.ID)
	require.NoError(t, err)
	_, err = f.friends.RespondToRequest(ctx, b.ID, a.ID, models.FriendStatusConfirmed)
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, owner := range []*models.User{a, a, b} {
		post := &models.Post{UserID: owner.ID, Body: owner.Name, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, f.db.Create(post).Error)
	}

	posts, err := f.posts.ListPosts(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2, "a friend's posts are not part of the caller's listing")
	assert.True(t, posts[0].CreatedAt.After(posts[1].CreatedAt))
	for _, p := range posts {
		assert.Equal(t, a.ID, p.UserID)
	}

	c := f.user(t, "c")
	none, err := f.posts.ListPosts(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListUserPosts_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner, friend, stranger := f.user(t, "owner"), f.user(t, "friend"), f.user(t, "stranger")

	_, err := f.friends.SendRequest(ctx, friend.ID, owner.ID)
	require.NoError(t, err)
	_, err = f.friends.RespondToRequest(ctx, owner.ID, friend.ID, models.FriendStatusConfirmed)
	require.NoError(t, err)

	_, err = f.posts.CreatePost(ctx, owner.ID, "hello friends", "")
	require.NoError(t, err)

	mine, err := f.posts.ListUserPosts(ctx, owner.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	seen, err := f.posts.ListUserPosts(ctx, friend.ID, owner.ID)
	require.NoError(t, err)
	assert.Len(t, seen, 1)

	hidden, err := f.posts.ListUserPosts(ctx, stranger.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, hidden)

	_, err = f.posts.ListUserPosts(ctx, owner.ID, 999)
	assertCode(t, err, errors.ErrCodeUserNotFound)
}

func TestCreatePost_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.user(t, "a")

	_, err := f.posts.CreatePost(ctx, a.ID, "<script>x()</script>", "javascript:alert(1)")
	assertCode(t, err, errors.ErrCodeValidation)
	meta := errors.As(err).Meta
	assert.Contains(t, meta, "body")
	assert.Contains(t, meta, "image")

	post, err := f.posts.CreatePost(ctx, a.ID, "  <b>hi</b> there ", "https://cdn.example.com/p.png")
	require.NoError(t, err)
	assert.Equal(t, "hi there", post.Body)
	assert.NotZero(t, post.ID)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, token, err := f.accts.Register(ctx, "Ada", "Ada@Example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "supersecret", user.Password)

	again, token, err := f.accts.Authenticate(ctx, "ada@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.NotEmpty(t, token)

	_, _, err = f.accts.Authenticate(ctx, "ada@example.com", "wrong-password")
	assertCode(t, err, errors.ErrCodeUnauthorized)

	_, _, err = f.accts.Authenticate(ctx, "nobody@example.com", "supersecret")
	assertCode(t, err, errors.ErrCodeUnauthorized)

	_, _, err = f.accts.Register(ctx, "", "bad", "short")
	assertCode(t, err, errors.ErrCodeValidation)
	assert.Len(t, errors.As(err).Meta, 3)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.accts.Register(context.Background(), "Ada", "ada@example.com", strings.Repeat("p", 80))
	assertCode(t, err, errors.ErrCodeValidation)
	assert.Equal(t, []string{"The password may not be greater than 72 characters."}, errors.As(err).Meta["password"])

	var count int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	_, _, err = f.accts.Register(context.Background(), "Ada", "ada@example.com", strings.Repeat("p", 72))
	require.NoError(t, err)
}

func TestListFriendsAndRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, c := f.user(t, "a"), f.user(t, "b"), f.user(t, "c")

	_, err := f.friends.SendRequest(ctx, b.ID, a.ID)
	require.NoError(t, err)
	_, err = f.friends.RespondToRequest(ctx, a.ID, b.ID, models.FriendStatusConfirmed)
	require.NoError(t, err)
	_, err = f.friends.SendRequest(ctx, c.ID, a.ID)
	require.NoError(t, err)

	friends, err := f.friends.ListFriends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, b.ID, friends[0].ID)

	requests, err := f.friends.ListPendingRequests(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, c.ID, requests[0].UserID)
}
