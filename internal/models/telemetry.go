package models

import "time"

// Post is one scraped content item. Numeric fields the scrapers could not
// fill decode to 0; a missing posted_at stays nil and keeps the post out of
// every scoring window.
type Post struct {
	ID         string     `bson:"_id"`
	EntityID   string     `bson:"entity_id"`
	PostedAt   *time.Time `bson:"posted_at,omitempty"`
	Likes      float64    `bson:"likes"`
	Comments   float64    `bson:"comments"`
	Views      float64    `bson:"views"`
	Saves      float64    `bson:"saves"`
	Engagement float64    `bson:"engagement"`
	Format     string     `bson:"format"`
	Hashtags   []string   `bson:"hashtags"`
}

// ProfileSnapshot is a point-in-time follower count for an entity.
type ProfileSnapshot struct {
	EntityID  string    `bson:"entity_id"`
	Date      time.Time `bson:"snapshot_date"`
	Followers float64   `bson:"followers"`
}

// Comment sentiment categories as written by the analysis pipeline. A
// comment that was never analyzed carries an empty Sentiment.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Comment is a reader reaction on a post, tied to its entity through the
// post id.
type Comment struct {
	ID        string `bson:"_id"`
	PostID    string `bson:"post_id"`
	Sentiment string `bson:"sentiment,omitempty"`
}
