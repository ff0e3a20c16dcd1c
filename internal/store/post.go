package store

import (
	"context"

	"github.com/garageconnect/customer/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommunityPostStore struct {
	db *pgxpool.Pool
}

func NewCommunityPostStore(db *pgxpool.Pool) *CommunityPostStore {
	return &CommunityPostStore{db: db}
}

func (s *CommunityPostStore) ListRecentByTenant(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.CommunityPost, error) {
	rows, err := s.db.Query(ctx,
		`SELECT cp.id, cp.tenant_id, cp.trip_id, t.title, cp.profile_id, COALESCE(p.name, ''), p.avatar_url,
		        cp.content, cp.media_url, cp.likes_count, cp.comments_count, cp.created_at
		 FROM community_posts cp
		 LEFT JOIN profiles p ON p.id = cp.profile_id
		 LEFT JOIN trips t ON t.id = cp.trip_id
		 WHERE cp.tenant_id = $1
		 ORDER BY cp.created_at DESC
		 LIMIT $2`,
		tenantID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.CommunityPost{}
	for rows.Next() {
		var cp domain.CommunityPost
		if err := rows.Scan(&cp.ID, &cp.TenantID, &cp.TripID, &cp.TripTitle, &cp.AuthorID, &cp.AuthorName, &cp.AuthorAvatarURL,
			&cp.Content, &cp.MediaURL, &cp.LikesCount, &cp.CommentsCount, &cp.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, cp)
	}
	return posts, rows.Err()
}
