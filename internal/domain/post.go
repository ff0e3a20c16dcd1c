package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommunityPost carries its author's name/avatar and linked trip title
// denormalised from the joined rows.
type CommunityPost struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"workshop_id"`
	TripID          *uuid.UUID `json:"trip_id"`
	TripTitle       *string    `json:"trip_title,omitempty"`
	AuthorID        uuid.UUID  `json:"customer_id"`
	AuthorName      string     `json:"author_name"`
	AuthorAvatarURL *string    `json:"author_avatar_url,omitempty"`
	Content         string     `json:"content"`
	MediaURL        *string    `json:"media_url"`
	LikesCount      int        `json:"likes_count"`
	CommentsCount   int        `json:"comments_count"`
	CreatedAt       time.Time  `json:"created_at"`
}
