package friendship

import "github.com/mroshb/friends_api/internal/models"

const (
	LabelNone    = ""
	LabelAdd     = "Add Friend"
	LabelPending = "Pending Friend Request"
	LabelAccept  = "Accept"
)

// Snapshot is the part of an edge the friend button depends on. The client
// builds it from the rendered resource, the server from the row.
type Snapshot struct {
	Confirmed bool
	FriendID  uint
}

// SnapshotOf returns nil for a missing edge.
func SnapshotOf(edge *models.Friend) *Snapshot {
	if edge == nil {
		return nil
	}
	return &Snapshot{Confirmed: edge.IsConfirmed(), FriendID: edge.FriendID}
}

// ButtonLabel is the friend button text viewerID sees on profileID's page.
func ButtonLabel(viewerID, profileID uint, snap *Snapshot) string {
	switch {
	case viewerID == profileID:
		return LabelNone
	case snap == nil:
		return LabelAdd
	case !snap.Confirmed && snap.FriendID != viewerID:
		return LabelPending
	case snap.Confirmed:
		return LabelNone
	}
	return LabelAccept
}
