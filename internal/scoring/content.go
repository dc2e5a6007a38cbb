package scoring

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/creatorstation/fibboscore/internal/models"
)

// Content pillar weights, summing to 25. Each component carries a floor
// used when the 90-day sample is too small to read anything into.
const (
	formatMax      = 8.0
	diversityMax   = 6.0
	consistencyMax = 7.0
	liftMax        = 4.0

	formatFloor      = 4.0 // fewer than 1 post
	diversityFloor   = 3.0 // no hashtags at all
	consistencyFloor = 3.5 // fewer than 10 posts
	liftFloor        = 2.0 // fewer than 5 posts

	consistencyMinPosts = 10
	liftMinPosts        = 5
)

// scoreContent rates what the entity publishes: format choice, hashtag
// vocabulary, output consistency and hashtag lift.
func scoreContent(w *EntityWindows) (float64, models.MetricsMap) {
	posts := w.Posts90

	format := scoreFormat(posts)
	diversity, uniqueTags, tagUses := scoreDiversity(posts)
	consistency, topRatio := scoreConsistency(posts)
	lift, liftRatio := scoreHashtagLift(posts)

	metrics := models.MetricsMap{
		"unique_hashtags":    uniqueTags,
		"hashtag_uses":       tagUses,
		"top_decile_ratio":   round2(topRatio),
		"hashtag_lift_ratio": round2(liftRatio),
	}

	return format + diversity + consistency + lift, metrics
}

// scoreFormat compares the most-used content format against the format that
// actually performs best on average engagement. Using the winning format
// scores max; otherwise the engagement gap decides.
func scoreFormat(posts []models.Post) float64 {
	if len(posts) < 1 {
		return formatFloor
	}

	type formatStat struct {
		count      float64
		engagement float64
	}
	byFormat := make(map[string]*formatStat)
	for _, post := range posts {
		stat, ok := byFormat[post.Format]
		if !ok {
			stat = &formatStat{}
			byFormat[post.Format] = stat
		}
		stat.count++
		stat.engagement += post.Engagement
	}

	formats := maps.Keys(byFormat)
	slices.Sort(formats)

	var mostUsed, best string
	var mostUsedCount, bestAvg float64
	for _, format := range formats {
		stat := byFormat[format]
		avg := stat.engagement / stat.count
		if stat.count > mostUsedCount {
			mostUsed = format
			mostUsedCount = stat.count
		}
		if best == "" || avg > bestAvg {
			best = format
			bestAvg = avg
		}
	}

	if mostUsed == best || bestAvg == 0 {
		return formatMax
	}

	stat := byFormat[mostUsed]
	ratio := (stat.engagement / stat.count) / bestAvg
	return mapRange(ratio, 0.3, 1, 3, formatMax)
}

// scoreDiversity rewards a varied hashtag vocabulary relative to how many
// hashtags are used overall.
func scoreDiversity(posts []models.Post) (score, unique, uses float64) {
	seen := make(map[string]bool)
	for _, post := range posts {
		for _, tag := range post.Hashtags {
			seen[tag] = true
			uses++
		}
	}
	if uses == 0 {
		return diversityFloor, 0, 0
	}

	unique = float64(len(seen))
	ratio := math.Min(1, unique/(uses*0.3))
	return mapRange(ratio, 0, 1, 1, diversityMax), unique, uses
}

// scoreConsistency measures how hit-driven the output is: the further the
// top decile's average engagement sits above the overall average, the lower
// the score. Note the inverted output range.
func scoreConsistency(posts []models.Post) (score, ratio float64) {
	if len(posts) < consistencyMinPosts {
		return consistencyFloor, 0
	}

	engagements := postEngagements(posts)
	overall := average(engagements)
	if overall == 0 {
		return consistencyFloor, 0
	}

	sorted := slices.Clone(engagements)
	slices.SortFunc(sorted, func(a, b float64) int {
		if a > b {
			return -1
		}
		if a < b {
			return 1
		}
		return 0
	})
	topN := int(math.Ceil(float64(len(sorted)) * 0.1))
	ratio = average(sorted[:topN]) / overall

	return mapRange(ratio, 1, 5, consistencyMax, 0), ratio
}

// scoreHashtagLift compares average engagement on hashtagged vs untagged
// posts. Without both populations there is no lift to measure.
func scoreHashtagLift(posts []models.Post) (score, ratio float64) {
	if len(posts) < liftMinPosts {
		return liftFloor, 0
	}

	var tagged, untagged []float64
	for _, post := range posts {
		if len(post.Hashtags) > 0 {
			tagged = append(tagged, post.Engagement)
		} else {
			untagged = append(untagged, post.Engagement)
		}
	}
	if len(tagged) == 0 || len(untagged) == 0 {
		return liftFloor, 0
	}

	base := average(untagged)
	if base == 0 {
		return liftFloor, 0
	}

	ratio = average(tagged) / base
	return mapRange(ratio, 0.8, 1.5, 0, liftMax), ratio
}
