// Package resources renders models into the API's JSON documents.
package resources

import (
	"fmt"
	"time"

	"github.com/mroshb/friends_api/internal/friendship"
	"github.com/mroshb/friends_api/internal/models"
	"github.com/mroshb/friends_api/pkg/utils"
)

type Links struct {
	Self string `json:"self"`
}

// Document is the single-resource envelope: {"data": ..., "links": {...}}.
type Document struct {
	Data  interface{} `json:"data"`
	Links Links       `json:"links"`
}

// Collection wraps each item as its own Document.
type Collection struct {
	Data  []Document `json:"data"`
	Links Links      `json:"links"`
}

type FriendAttributes struct {
	ConfirmedAt *string `json:"confirmed_at"`
	FriendID    uint    `json:"friend_id"`
	UserID      uint    `json:"user_id"`
	State       string  `json:"state"`
}

type FriendData struct {
	Type            string           `json:"type"`
	FriendRequestID uint             `json:"friend_request_id"`
	Attributes      FriendAttributes `json:"attributes"`
}

type UserAttributes struct {
	Name         string    `json:"name"`
	Friendship   *Document `json:"friendship"`
	FriendButton string    `json:"friend_button"`
}

type UserData struct {
	Type       string         `json:"type"`
	UserID     uint           `json:"user_id"`
	Attributes UserAttributes `json:"attributes"`
}

type PostAttributes struct {
	Body     string `json:"body"`
	Image    string `json:"image"`
	PostedAt string `json:"posted_at"`
	PostedBy uint   `json:"posted_by"`
}

type PostData struct {
	Type       string         `json:"type"`
	PostID     uint           `json:"post_id"`
	Attributes PostAttributes `json:"attributes"`
}

// Renderer builds absolute links and relative timestamps.
type Renderer struct {
	baseURL string
	now     func() time.Time
}

func NewRenderer(baseURL string, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{baseURL: baseURL, now: now}
}

func (r *Renderer) URL(format string, args ...interface{}) string {
	return r.baseURL + fmt.Sprintf(format, args...)
}

// Friend renders an edge; nil renders as nil so that an absent friendship
// serializes as JSON null.
func (r *Renderer) Friend(edge *models.Friend) *Document {
	if edge == nil {
		return nil
	}

	var confirmedAt *string
	if edge.ConfirmedAt != nil {
		rel := utils.DiffForHumans(*edge.ConfirmedAt, r.now())
		confirmedAt = &rel
	}

	return &Document{
		Data: FriendData{
			Type:            "friend-request",
			FriendRequestID: edge.ID,
			Attributes: FriendAttributes{
				ConfirmedAt: confirmedAt,
				FriendID:    edge.FriendID,
				UserID:      edge.UserID,
				State:       friendship.StateOf(edge).String(),
			},
		},
		Links: Links{Self: r.URL("/users/%d", edge.FriendID)},
	}
}

func (r *Renderer) FriendCollection(edges []models.Friend, self string) Collection {
	out := Collection{Data: make([]Document, 0, len(edges)), Links: Links{Self: self}}
	for i := range edges {
		out.Data = append(out.Data, *r.Friend(&edges[i]))
	}
	return out
}

// User renders user as seen by viewerID, with the edge between them (if any).
func (r *Renderer) User(user *models.User, edge *models.Friend, viewerID uint) Document {
	label := friendship.ButtonLabel(viewerID, user.ID, friendship.SnapshotOf(edge))
	return r.user(user, r.Friend(edge), label)
}

// FriendsCollection renders a user's confirmed friends. Edges are omitted.
func (r *Renderer) FriendsCollection(users []models.User, self string) Collection {
	out := Collection{Data: make([]Document, 0, len(users)), Links: Links{Self: self}}
	for i := range users {
		out.Data = append(out.Data, r.user(&users[i], nil, friendship.LabelNone))
	}
	return out
}

func (r *Renderer) user(user *models.User, edge *Document, label string) Document {
	return Document{
		Data: UserData{
			Type:   "users",
			UserID: user.ID,
			Attributes: UserAttributes{
				Name:         user.Name,
				Friendship:   edge,
				FriendButton: label,
			},
		},
		Links: Links{Self: r.URL("/users/%d", user.ID)},
	}
}

func (r *Renderer) Post(post *models.Post) Document {
	return Document{
		Data: PostData{
			Type:   "posts",
			PostID: post.ID,
			Attributes: PostAttributes{
				Body:     post.Body,
				Image:    post.Image,
				PostedAt: utils.DiffForHumans(post.CreatedAt, r.now()),
				PostedBy: post.UserID,
			},
		},
		Links: Links{Self: r.URL("/posts/%d", post.ID)},
	}
}

func (r *Renderer) PostCollection(posts []models.Post, self string) Collection {
	out := Collection{Data: make([]Document, 0, len(posts)), Links: Links{Self: self}}
	for i := range posts {
		out.Data = append(out.Data, r.Post(&posts[i]))
	}
	return out
}
