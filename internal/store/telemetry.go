package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/creatorstation/fibboscore/internal/models"
)

// TelemetrySet is everything the scrapers collected for one project's
// entities, materialized in memory before scoring starts.
type TelemetrySet struct {
	Posts     []models.Post
	Snapshots []models.ProfileSnapshot
	Comments  []models.Comment
}

// TelemetryStore reads scraped posts, profile snapshots and comments from
// MongoDB. Read-only; the collection pipeline owns the writes.
type TelemetryStore struct {
	db *mongo.Database
}

func NewTelemetryStore(db *mongo.Database) *TelemetryStore {
	return &TelemetryStore{db: db}
}

// FetchProject pulls the full telemetry for a set of entities. Comments are
// keyed by post id, so they are resolved through the posts that came back.
func (s *TelemetryStore) FetchProject(ctx context.Context, entityIDs []string) (*TelemetrySet, error) {
	set := &TelemetrySet{}
	if len(entityIDs) == 0 {
		return set, nil
	}

	entityFilter := bson.M{"entity_id": bson.M{"$in": entityIDs}}

	cur, err := s.db.Collection("posts").Find(ctx, entityFilter)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}
	if err := cur.All(ctx, &set.Posts); err != nil {
		return nil, fmt.Errorf("decoding posts: %w", err)
	}

	cur, err = s.db.Collection("profile_snapshots").Find(ctx, entityFilter)
	if err != nil {
		return nil, fmt.Errorf("fetching profile snapshots: %w", err)
	}
	if err := cur.All(ctx, &set.Snapshots); err != nil {
		return nil, fmt.Errorf("decoding profile snapshots: %w", err)
	}

	postIDs := make([]string, 0, len(set.Posts))
	for _, post := range set.Posts {
		postIDs = append(postIDs, post.ID)
	}
	if len(postIDs) == 0 {
		return set, nil
	}

	cur, err = s.db.Collection("comments").Find(ctx, bson.M{"post_id": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}
	if err := cur.All(ctx, &set.Comments); err != nil {
		return nil, fmt.Errorf("decoding comments: %w", err)
	}

	return set, nil
}
