package scoring

import (
	"time"

	"github.com/creatorstation/fibboscore/internal/models"
)

// Presence pillar weights, summing to 25.
const (
	presenceGrowthMax     = 8.0
	presenceVolumeMax     = 6.0
	presenceRegularityMax = 5.0
	presenceReachMax      = 6.0

	// Input ranges the raw signals are mapped from.
	growthRateFloor = -0.005 // -0.5% over 90 days
	growthRateCeil  = 0.015  // +1.5% over 90 days
	volumePerWeekCeil = 3.0
	reachRateCeil     = 0.12
)

// scorePresence rates growth, publishing volume, regularity and reach.
func scorePresence(asOf time.Time, w *EntityWindows) (float64, models.MetricsMap) {
	growthRate := followerGrowthRate(w)
	growth := mapRange(growthRate, growthRateFloor, growthRateCeil, 0, presenceGrowthMax)

	postsPerWeek := float64(len(w.Posts90)) / (float64(fullWindowDays) / 7.0)
	volume := mapRange(postsPerWeek, 0, volumePerWeekCeil, 0, presenceVolumeMax)

	cov := coefficientOfVariation(weeklyCounts(asOf, w.Posts90))
	regularity := mapRange(1-cov, 0, 1, 0, presenceRegularityMax)

	avgViews := average(postViews(w.PostsWithViews))
	viewRate := 0.0
	if w.Followers > 0 {
		viewRate = avgViews / w.Followers
	}
	reach := mapRange(viewRate, 0, reachRateCeil, 0, presenceReachMax)

	metrics := models.MetricsMap{
		"followers":            round2(w.Followers),
		"followers_90d_ago":    round2(w.FollowersThen),
		"follower_growth_rate": round2(growthRate * 100),
		"posts_90d":            float64(len(w.Posts90)),
		"posts_per_week":       round2(postsPerWeek),
		"weekly_cov":           round2(cov),
		"avg_views":            round2(avgViews),
	}

	return growth + volume + regularity + reach, metrics
}

// followerGrowthRate is the fractional follower change across the 90-day
// window. A zero baseline reads as flat.
func followerGrowthRate(w *EntityWindows) float64 {
	if w.FollowersThen <= 0 {
		return 0
	}
	return (w.Followers - w.FollowersThen) / w.FollowersThen
}

func postViews(posts []models.Post) []float64 {
	views := make([]float64, 0, len(posts))
	for _, post := range posts {
		views = append(views, post.Views)
	}
	return views
}
