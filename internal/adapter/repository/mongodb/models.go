package mongodb

import (
	"fmt"
	"time"

	"github.com/roommatefinder/room-service/internal/room/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// roomDocument is the MongoDB shape of a room. Besides owner_id, the
// document keeps the owner-reference aliases older records were written
// with (user_id, host_id, a nested owner object, owner_email); ownership
// checks walk them in a fixed order.
type roomDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Location     string             `bson:"location"`
	RentAmount   float64            `bson:"rent_amount"`
	OwnerID      string             `bson:"owner_id,omitempty"`
	LegacyUserID string             `bson:"user_id,omitempty"`
	LegacyHostID string             `bson:"host_id,omitempty"`
	LegacyOwner  *ownerRefDocument  `bson:"owner,omitempty"`
	OwnerEmail   string             `bson:"owner_email,omitempty"`
	Available    bool               `bson:"available"`
	PhotoURLs    []string           `bson:"photo_urls,omitempty"`
	LikeCount    int64              `bson:"like_count"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty"`
}

type ownerRefDocument struct {
	ID string `bson:"id"`
}

type likeDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoomID    string             `bson:"room_id"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Name     string             `bson:"name,omitempty"`
	PhotoURL string             `bson:"photo_url,omitempty"`
}

func toRoomDocument(r *domain.Room) (*roomDocument, error) {
	if r == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if r.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(r.ID)
		if err != nil {
			return nil, fmt.Errorf("toRoomDocument: invalid room ID %q: %w", r.ID, err)
		}
	}

	doc := &roomDocument{
		ID:           docID,
		Title:        r.Title,
		Location:     r.Location,
		RentAmount:   r.RentAmount,
		OwnerID:      r.OwnerID,
		LegacyUserID: r.LegacyUserID,
		LegacyHostID: r.LegacyHostID,
		OwnerEmail:   r.OwnerEmail,
		Available:    r.Available,
		PhotoURLs:    r.PhotoURLs,
		LikeCount:    r.LikeCount,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.LegacyOwner != nil {
		doc.LegacyOwner = &ownerRefDocument{ID: r.LegacyOwner.ID}
	}
	return doc, nil
}

func toDomainRoom(d *roomDocument) *domain.Room {
	if d == nil {
		return nil
	}
	room := &domain.Room{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Location:     d.Location,
		RentAmount:   d.RentAmount,
		OwnerID:      d.OwnerID,
		LegacyUserID: d.LegacyUserID,
		LegacyHostID: d.LegacyHostID,
		OwnerEmail:   d.OwnerEmail,
		Available:    d.Available,
		PhotoURLs:    d.PhotoURLs,
		LikeCount:    d.LikeCount,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.LegacyOwner != nil {
		room.LegacyOwner = &domain.OwnerRef{ID: d.LegacyOwner.ID}
	}
	return room
}

func toDomainRooms(docs []*roomDocument) []*domain.Room {
	rooms := make([]*domain.Room, 0, len(docs))
	for _, doc := range docs {
		rooms = append(rooms, toDomainRoom(doc))
	}
	return rooms
}

func toDomainLike(d *likeDocument) *domain.Like {
	if d == nil {
		return nil
	}
	return &domain.Like{
		ID:        d.ID.Hex(),
		RoomID:    d.RoomID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
	}
}

func toDomainLikes(docs []*likeDocument) []*domain.Like {
	likes := make([]*domain.Like, 0, len(docs))
	for _, doc := range docs {
		likes = append(likes, toDomainLike(doc))
	}
	return likes
}

func toDomainProfile(d *userDocument) *domain.UserProfile {
	if d == nil {
		return nil
	}
	return &domain.UserProfile{
		ID:       d.ID.Hex(),
		Email:    d.Email,
		Name:     d.Name,
		PhotoURL: d.PhotoURL,
	}
}
