package scoring

import (
	"time"

	"golang.org/x/exp/slices"

	"github.com/creatorstation/fibboscore/internal/models"
	"github.com/creatorstation/fibboscore/internal/store"
)

const (
	fullWindowDays   = 90
	recentWindowDays = 30
	priorWindowDays  = 60
)

// EntityWindows is one entity's telemetry sliced into the trailing windows
// the pillar scorers consume. Windows trail from the run's as-of instant;
// posts without a timestamp are excluded from all of them.
type EntityWindows struct {
	Entity models.Entity

	// Trailing 90 days, sorted by posted-at then id.
	Posts90 []models.Post
	// Trailing 30 days.
	Posts30 []models.Post
	// The 30-60-days-ago band, for trend comparison.
	PostsPrior30 []models.Post
	// Every timestamped post with recorded views, for reach.
	PostsWithViews []models.Post

	// Latest follower count, 0 when no snapshot exists.
	Followers float64
	// Follower count nearest 90 days ago; falls back to the latest when no
	// snapshot is old enough.
	FollowersThen float64

	// Comments attached to Posts90.
	Comments []models.Comment
}

// buildWindows partitions a project's telemetry per entity. All windowing
// happens here, once, so the competitiveness scorer can read peer windows
// without recomputing them.
func buildWindows(asOf time.Time, entities []models.Entity, tel *store.TelemetrySet) map[string]*EntityWindows {
	fullStart := asOf.AddDate(0, 0, -fullWindowDays)
	recentStart := asOf.AddDate(0, 0, -recentWindowDays)
	priorStart := asOf.AddDate(0, 0, -priorWindowDays)

	windows := make(map[string]*EntityWindows, len(entities))
	for _, ent := range entities {
		windows[ent.ID] = &EntityWindows{Entity: ent}
	}

	postEntity := make(map[string]string, len(tel.Posts))
	inWindow := make(map[string]bool, len(tel.Posts))

	posts := slices.Clone(tel.Posts)
	slices.SortFunc(posts, func(a, b models.Post) int {
		at, bt := postedAtOrZero(a), postedAtOrZero(b)
		if !at.Equal(bt) {
			return at.Compare(bt)
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	for _, post := range posts {
		w, ok := windows[post.EntityID]
		if ok && post.PostedAt != nil {
			postEntity[post.ID] = post.EntityID
			at := *post.PostedAt

			if !at.Before(fullStart) && !at.After(asOf) {
				w.Posts90 = append(w.Posts90, post)
				inWindow[post.ID] = true
				if !at.Before(recentStart) {
					w.Posts30 = append(w.Posts30, post)
				} else if !at.Before(priorStart) {
					w.PostsPrior30 = append(w.PostsPrior30, post)
				}
			}
			if post.Views > 0 {
				w.PostsWithViews = append(w.PostsWithViews, post)
			}
		}
	}

	for _, comment := range tel.Comments {
		if !inWindow[comment.PostID] {
			continue
		}
		if w, ok := windows[postEntity[comment.PostID]]; ok {
			w.Comments = append(w.Comments, comment)
		}
	}

	for _, w := range windows {
		latest, then := pickSnapshots(asOf, w.Entity.ID, tel.Snapshots)
		w.Followers = latest
		w.FollowersThen = then
	}

	return windows
}

func postedAtOrZero(p models.Post) time.Time {
	if p.PostedAt == nil {
		return time.Time{}
	}
	return *p.PostedAt
}

// pickSnapshots returns the latest follower count and the one from the
// newest snapshot at least 90 days old. With only recent history the latest
// count doubles as the baseline, which makes growth read as flat rather
// than failing.
func pickSnapshots(asOf time.Time, entityID string, snapshots []models.ProfileSnapshot) (latest, then float64) {
	cutoff := asOf.AddDate(0, 0, -fullWindowDays)

	var latestAt, thenAt time.Time
	haveLatest, haveThen := false, false

	for _, snap := range snapshots {
		if snap.EntityID != entityID || snap.Date.After(asOf) {
			continue
		}
		if !haveLatest || snap.Date.After(latestAt) {
			latest = snap.Followers
			latestAt = snap.Date
			haveLatest = true
		}
		if !snap.Date.After(cutoff) {
			if !haveThen || snap.Date.After(thenAt) {
				then = snap.Followers
				thenAt = snap.Date
				haveThen = true
			}
		}
	}

	if !haveThen {
		then = latest
	}
	return latest, then
}

// weeklyCounts builds posts-per-week buckets across the whole 90-day
// window, zero-filled. The zero weeks matter: they are what pushes the
// coefficient of variation up for bursty accounts.
func weeklyCounts(asOf time.Time, posts []models.Post) []float64 {
	start := asOf.AddDate(0, 0, -fullWindowDays)

	byWeek := make(map[string]float64)
	for _, post := range posts {
		if post.PostedAt != nil {
			byWeek[weeklyBucket(*post.PostedAt)]++
		}
	}

	// Walk Sunday to Sunday so the trailing partial week gets its bucket too.
	anchor := start.UTC().AddDate(0, 0, -int(start.UTC().Weekday()))
	var counts []float64
	for week := anchor; !week.After(asOf); week = week.AddDate(0, 0, 7) {
		counts = append(counts, byWeek[weeklyBucket(week)])
	}
	return counts
}
