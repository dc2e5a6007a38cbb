package scoring

import (
	"github.com/creatorstation/fibboscore/internal/models"
)

// Engagement pillar weights, summing to 25. When a signal is unavailable
// (saves never tracked, no analyzed comments, an empty trend window) the
// sub-score is the range midpoint, never 0: absence of data is not failure.
const (
	engagementRateMax = 10.0
	commentRateMax    = 5.0
	saveRateMax       = 5.0
	sentimentMax      = 2.5
	trendMax          = 2.5

	saveRateMidpoint  = saveRateMax / 2
	sentimentMidpoint = sentimentMax / 2
	trendMidpoint     = trendMax / 2

	engagementRateCeil = 1.5  // percent of followers
	commentRateCeil    = 0.1  // percent of followers
	saveRateCeil       = 0.15 // percent of followers
	trendChangeBound   = 0.3  // +/-30% engagement change
)

// scoreEngagement rates how the audience reacts to the 90-day output.
func scoreEngagement(w *EntityWindows) (float64, models.MetricsMap) {
	avgLikes := average(postLikes(w.Posts90))
	avgComments := average(postComments(w.Posts90))

	engRate := engagementRate(w)
	rate := mapRange(engRate, 0, engagementRateCeil, 0, engagementRateMax)

	commentPct := followerPercent(avgComments, w.Followers)
	commentRate := mapRange(commentPct, 0, commentRateCeil, 0, commentRateMax)

	saveRate, savePct := scoreSaveRate(w)
	sentiment, sentimentRaw := scoreSentiment(w.Comments)
	trend, trendChange := scoreTrend(w)

	metrics := models.MetricsMap{
		"avg_likes":           round2(avgLikes),
		"avg_comments":        round2(avgComments),
		"engagement_rate":     round2(engRate),
		"comment_rate":        round2(commentPct),
		"save_rate":           round2(savePct),
		"sentiment_weighted":  round2(sentimentRaw),
		"engagement_trend":    round2(trendChange * 100),
		"comments_90d":        float64(len(w.Comments)),
	}

	return rate + commentRate + saveRate + sentiment + trend, metrics
}

// engagementRate is (avg likes + avg comments) per follower, in percent.
// Also consumed by the competitiveness pillar for peer comparison.
func engagementRate(w *EntityWindows) float64 {
	avg := average(postLikes(w.Posts90)) + average(postComments(w.Posts90))
	return followerPercent(avg, w.Followers)
}

// scoreSaveRate treats an entirely save-less window as "saves not tracked"
// and hands back the midpoint.
func scoreSaveRate(w *EntityWindows) (score, pct float64) {
	tracked := false
	saves := make([]float64, 0, len(w.Posts90))
	for _, post := range w.Posts90 {
		if post.Saves > 0 {
			tracked = true
		}
		saves = append(saves, post.Saves)
	}
	if !tracked {
		return saveRateMidpoint, 0
	}

	pct = followerPercent(average(saves), w.Followers)
	return mapRange(pct, 0, saveRateCeil, 0, saveRateMax), pct
}

// scoreSentiment weighs analyzed comments 10/5/0 for positive/neutral/
// negative. With nothing analyzed the midpoint applies.
func scoreSentiment(comments []models.Comment) (score, weighted float64) {
	var positive, neutral, analyzed float64
	for _, comment := range comments {
		switch comment.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNeutral:
			neutral++
		case models.SentimentNegative:
		default:
			continue
		}
		analyzed++
	}
	if analyzed == 0 {
		return sentimentMidpoint, 0
	}

	weighted = (10*positive + 5*neutral) / analyzed
	return mapRange(weighted, 0, 10, 0, sentimentMax), weighted
}

// scoreTrend compares average engagement-per-post of the last 30 days with
// the 30 before that. Either window empty, or a flat-zero baseline, means
// there is no trend to read and the midpoint applies.
func scoreTrend(w *EntityWindows) (score, change float64) {
	if len(w.Posts30) == 0 || len(w.PostsPrior30) == 0 {
		return trendMidpoint, 0
	}

	recent := average(postEngagements(w.Posts30))
	prior := average(postEngagements(w.PostsPrior30))
	if prior == 0 {
		return trendMidpoint, 0
	}

	change = (recent - prior) / prior
	return mapRange(change, -trendChangeBound, trendChangeBound, 0, trendMax), change
}

func followerPercent(v, followers float64) float64 {
	if followers <= 0 {
		return 0
	}
	return v / followers * 100
}

func postLikes(posts []models.Post) []float64 {
	likes := make([]float64, 0, len(posts))
	for _, post := range posts {
		likes = append(likes, post.Likes)
	}
	return likes
}

func postComments(posts []models.Post) []float64 {
	comments := make([]float64, 0, len(posts))
	for _, post := range posts {
		comments = append(comments, post.Comments)
	}
	return comments
}

func postEngagements(posts []models.Post) []float64 {
	engagements := make([]float64, 0, len(posts))
	for _, post := range posts {
		engagements = append(engagements, post.Engagement)
	}
	return engagements
}
