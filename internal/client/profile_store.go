// Package client mirrors a profile page's state from the friends API: the
// viewed user, their posts and the friend button.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mroshb/friends_api/internal/friendship"
	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/pkg/logger"
	"go.uber.org/zap"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ProfileStore holds one profile page. Failed calls are logged and dropped;
// nothing is retried.
type ProfileStore struct {
	baseURL  string
	token    string
	viewerID uint
	http     *http.Client
	log      *zap.SugaredLogger

	mu          sync.RWMutex
	user        *UserDocument
	userStatus  Status
	posts       *PostCollection
	postsStatus Status
}

// NewProfileStore creates a store acting as viewerID. httpClient may be nil.
func NewProfileStore(baseURL, token string, viewerID uint, httpClient *http.Client) *ProfileStore {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ProfileStore{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		viewerID:    viewerID,
		http:        httpClient,
		log:         logger.Named("profile_store"),
		userStatus:  StatusIdle,
		postsStatus: StatusIdle,
	}
}

func (s *ProfileStore) User() *UserDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *ProfileStore) Posts() *PostCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.posts
}

// Status returns the user and posts load states.
func (s *ProfileStore) Status() (user, posts Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userStatus, s.postsStatus
}

// Friendship returns the viewer's edge with the loaded user, or nil.
func (s *ProfileStore) Friendship() *FriendshipDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	return s.user.Data.Attributes.Friendship
}

// FriendButtonText derives the button label from the mirrored friendship.
// It is empty until a user is loaded.
func (s *ProfileStore) FriendButtonText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return friendship.LabelNone
	}

	var snap *friendship.Snapshot
	if f := s.user.Data.Attributes.Friendship; f != nil {
		snap = &friendship.Snapshot{
			Confirmed: f.Data.Attributes.ConfirmedAt != nil,
			FriendID:  f.Data.Attributes.FriendID,
		}
	}
	return friendship.ButtonLabel(s.viewerID, s.user.Data.UserID, snap)
}

func (s *ProfileStore) FetchUser(ctx context.Context, userID uint) {
	s.setUserStatus(StatusLoading)

	var doc UserDocument
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", userID), nil, &doc); err != nil {
		s.setUserStatus(StatusError)
		s.log.Errorw("Failed to fetch user", "user_id", userID, "error", err)
		return
	}

	s.mu.Lock()
	s.user = &doc
	s.userStatus = StatusSuccess
	s.mu.Unlock()
}

func (s *ProfileStore) FetchUserPosts(ctx context.Context, userID uint) {
	s.setPostsStatus(StatusLoading)

	var posts PostCollection
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/posts", userID), nil, &posts); err != nil {
		s.setPostsStatus(StatusError)
		s.log.Errorw("Failed to fetch posts", "user_id", userID, "error", err)
		return
	}

	s.mu.Lock()
	s.posts = &posts
	s.postsStatus = StatusSuccess
	s.mu.Unlock()
}

// SendFriendRequest is a no-op unless the button currently reads "Add Friend".
func (s *ProfileStore) SendFriendRequest(ctx context.Context, friendID uint) {
	if s.FriendButtonText() != friendship.LabelAdd {
		return
	}

	var doc FriendshipDocument
	body := map[string]uint{"friend_id": friendID}
	if err := s.do(ctx, http.MethodPost, "/api/friend-request", body, &doc); err != nil {
		s.log.Errorw("Failed to send friend request", "friend_id", friendID, "error", err)
		return
	}
	s.setFriendship(&doc)
}

func (s *ProfileStore) AcceptFriendRequest(ctx context.Context, userID uint) {
	var doc FriendshipDocument
	body := map[string]interface{}{"user_id": userID, "status": models.FriendStatusConfirmed}
	if err := s.do(ctx, http.MethodPost, "/api/friend-request-response", body, &doc); err != nil {
		s.log.Errorw("Failed to accept friend request", "user_id", userID, "error", err)
		return
	}
	s.setFriendship(&doc)
}

func (s *ProfileStore) IgnoreFriendRequest(ctx context.Context, userID uint) {
	body := map[string]uint{"user_id": userID}
	if err := s.do(ctx, http.MethodDelete, "/api/friend-request-response/delete", body, nil); err != nil {
		s.log.Errorw("Failed to ignore friend request", "user_id", userID, "error", err)
		return
	}
	s.setFriendship(nil)
}

func (s *ProfileStore) setFriendship(doc *FriendshipDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user.Data.Attributes.Friendship = doc
	}
}

func (s *ProfileStore) setUserStatus(status Status) {
	s.mu.Lock()
	s.userStatus = status
	s.mu.Unlock()
}

func (s *ProfileStore) setPostsStatus(status Status) {
	s.mu.Lock()
	s.postsStatus = status
	s.mu.Unlock()
}

func (s *ProfileStore) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
