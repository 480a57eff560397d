package domain

import (
	"strings"
	"time"
)

// Identity is the resolved caller of a request. The zero value is the
// anonymous caller. Email is the primary identity; ID is set when the
// token also carried a user id.
type Identity struct {
	ID    string
	Email string
}

func (i Identity) IsAnonymous() bool {
	return i.ID == "" && i.Email == ""
}

// Key returns the string under which this caller appears in the like
// ledger. Identities are keyed by email.
func (i Identity) Key() string {
	return i.Email
}

// OwnerRef is the nested owner object found on some older room records.
type OwnerRef struct {
	ID string
}

type Room struct {
	ID         string
	Title      string
	Location   string
	RentAmount float64

	// OwnerID is the resolved owner identity, set at creation. The
	// remaining owner fields are a compatibility shim for records written
	// before owners were resolved to a single field.
	OwnerID      string
	LegacyUserID string
	LegacyHostID string
	LegacyOwner  *OwnerRef
	OwnerEmail   string

	Available bool
	PhotoURLs []string
	LikeCount int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether caller owns the room. Candidate owner fields
// are checked in a fixed order: resolved owner id, legacy id aliases, the
// nested owner reference, then the stored owner email against the caller's
// authenticated email.
func (r *Room) IsOwnedBy(caller Identity) bool {
	if caller.IsAnonymous() {
		return false
	}
	candidates := []string{r.OwnerID, r.LegacyUserID, r.LegacyHostID}
	if r.LegacyOwner != nil {
		candidates = append(candidates, r.LegacyOwner.ID)
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if c == caller.ID || (caller.Email != "" && strings.EqualFold(c, caller.Email)) {
			return true
		}
	}
	if r.OwnerEmail != "" && caller.Email != "" && strings.EqualFold(r.OwnerEmail, caller.Email) {
		return true
	}
	return false
}

// DisplayLikeCount clamps the stored counter for presentation. The stored
// value can drift below zero if a decrement lands on a record whose counter
// was already reset.
func (r *Room) DisplayLikeCount() int64 {
	return ClampLikeCount(r.LikeCount)
}

func ClampLikeCount(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// Like is one ledger entry: user UserID likes room RoomID. Entries are
// never mutated in place.
type Like struct {
	ID        string
	RoomID    string
	UserID    string
	CreatedAt time.Time
}

// LikeResult is what the mutating like operations report back.
type LikeResult struct {
	LikeCount int64
	HasLiked  bool
}

// LikeStatus answers "has this caller liked this room" together with the
// current counter.
type LikeStatus struct {
	LikeCount int64
	HasLiked  bool
}

// UserProfile is the slice of the external user directory exposed to
// liked-by queries.
type UserProfile struct {
	ID       string
	Email    string
	Name     string
	PhotoURL string
}

// Liker is a ledger entry enriched with the liker's directory profile.
// Profile is nil when the directory has no matching user.
type Liker struct {
	UserID    string
	CreatedAt time.Time
	Profile   *UserProfile
}
