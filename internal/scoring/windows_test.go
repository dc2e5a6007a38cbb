package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorstation/fibboscore/internal/models"
	"github.com/creatorstation/fibboscore/internal/store"
)

var testAsOf = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC) // a Sunday

func postAt(id, entityID string, daysAgo int) models.Post {
	at := testAsOf.AddDate(0, 0, -daysAgo)
	return models.Post{ID: id, EntityID: entityID, PostedAt: &at}
}

func TestBuildWindowsPartitionsPosts(t *testing.T) {
	entities := []models.Entity{{ID: "a", ProjectID: "p", Role: models.RoleBrand}}

	recent := postAt("p1", "a", 10)
	band := postAt("p2", "a", 45)
	old := postAt("p3", "a", 75)
	outside := postAt("p4", "a", 100)
	outside.Views = 500
	untimed := models.Post{ID: "p5", EntityID: "a", Views: 900}

	tel := &store.TelemetrySet{Posts: []models.Post{untimed, outside, old, band, recent}}

	windows := buildWindows(testAsOf, entities, tel)
	w := windows["a"]
	require.NotNil(t, w)

	assert.Len(t, w.Posts90, 3)
	require.Len(t, w.Posts30, 1)
	assert.Equal(t, "p1", w.Posts30[0].ID)
	require.Len(t, w.PostsPrior30, 1)
	assert.Equal(t, "p2", w.PostsPrior30[0].ID)

	// View-bearing posts are collected across all timestamped history, but a
	// post without a timestamp stays out of every subset.
	require.Len(t, w.PostsWithViews, 1)
	assert.Equal(t, "p4", w.PostsWithViews[0].ID)
}

func TestBuildWindowsSnapshotSelection(t *testing.T) {
	entities := []models.Entity{
		{ID: "a", ProjectID: "p", Role: models.RoleBrand},
		{ID: "b", ProjectID: "p", Role: models.RoleCompetitor},
	}
	tel := &store.TelemetrySet{
		Snapshots: []models.ProfileSnapshot{
			{EntityID: "a", Date: testAsOf.AddDate(0, 0, -1), Followers: 1000},
			{EntityID: "a", Date: testAsOf.AddDate(0, 0, -95), Followers: 900},
			{EntityID: "a", Date: testAsOf.AddDate(0, 0, -200), Followers: 500},
			// Entity b has no snapshot old enough; baseline falls back to latest.
			{EntityID: "b", Date: testAsOf.AddDate(0, 0, -5), Followers: 2000},
		},
	}

	windows := buildWindows(testAsOf, entities, tel)

	assert.Equal(t, 1000.0, windows["a"].Followers)
	assert.Equal(t, 900.0, windows["a"].FollowersThen)

	assert.Equal(t, 2000.0, windows["b"].Followers)
	assert.Equal(t, 2000.0, windows["b"].FollowersThen)
}

func TestBuildWindowsCommentsFollowTheirPosts(t *testing.T) {
	entities := []models.Entity{{ID: "a", ProjectID: "p", Role: models.RoleBrand}}
	tel := &store.TelemetrySet{
		Posts: []models.Post{postAt("in", "a", 20), postAt("out", "a", 120)},
		Comments: []models.Comment{
			{ID: "c1", PostID: "in", Sentiment: models.SentimentPositive},
			{ID: "c2", PostID: "in"},
			{ID: "c3", PostID: "out", Sentiment: models.SentimentNegative},
			{ID: "c4", PostID: "unknown"},
		},
	}

	windows := buildWindows(testAsOf, entities, tel)

	require.Len(t, windows["a"].Comments, 2)
	assert.Equal(t, "c1", windows["a"].Comments[0].ID)
}

func TestWeeklyCountsZeroFillsTheWindow(t *testing.T) {
	counts := weeklyCounts(testAsOf, nil)
	require.GreaterOrEqual(t, len(counts), 13)
	for _, c := range counts {
		assert.Equal(t, 0.0, c)
	}

	// A single post lands in exactly one bucket.
	post := postAt("p1", "a", 3)
	counts = weeklyCounts(testAsOf, []models.Post{post})
	var total float64
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 1.0, total)
}
