package client

import "github.com/mroshb/friends_api/internal/resources"

// Typed mirrors of the server documents, for decoding.

type FriendshipDocument struct {
	Data  resources.FriendData `json:"data"`
	Links resources.Links      `json:"links"`
}

type UserAttributes struct {
	Name         string              `json:"name"`
	Friendship   *FriendshipDocument `json:"friendship"`
	FriendButton string              `json:"friend_button"`
}

type UserData struct {
	Type       string         `json:"type"`
	UserID     uint           `json:"user_id"`
	Attributes UserAttributes `json:"attributes"`
}

type UserDocument struct {
	Data  UserData        `json:"data"`
	Links resources.Links `json:"links"`
}

type PostDocument struct {
	Data  resources.PostData `json:"data"`
	Links resources.Links    `json:"links"`
}

type PostCollection struct {
	Data  []PostDocument  `json:"data"`
	Links resources.Links `json:"links"`
}
