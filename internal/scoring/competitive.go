package scoring

import (
	"math"

	"github.com/creatorstation/fibboscore/internal/models"
)

// Competitiveness pillar weights, summing to 25. The pillar only means
// something for a brand with tracked competitors; everyone else gets the
// fixed midpoint.
const (
	competitiveMidpoint = 13.0

	relEngagementMax = 9.0
	relGrowthMax     = 6.0
	relVolumeMax     = 4.0
	shareMax         = 6.0

	relRatioFloor = 0.3
	relRatioCeil  = 1.5
	shareRatioCeil = 2.0
)

// peerAggregate is the competitor side of the comparison, averaged across
// every competitor with any follower or post data. Computed once per run
// and shared by all brand entities.
type peerAggregate struct {
	count              int
	avgEngagementRate  float64
	avgGrowthRate      float64
	avgPostCount       float64
	totalEngagement    float64
}

func buildPeerAggregate(windows map[string]*EntityWindows, entities []models.Entity) *peerAggregate {
	agg := &peerAggregate{}

	var sumRate, sumGrowth, sumPosts float64
	for _, ent := range entities {
		if ent.Role != models.RoleCompetitor {
			continue
		}
		w := windows[ent.ID]
		if w == nil || (w.Followers <= 0 && len(w.Posts90) == 0) {
			continue
		}

		agg.count++
		sumRate += engagementRate(w)
		sumGrowth += followerGrowthRate(w)
		sumPosts += float64(len(w.Posts90))
		agg.totalEngagement += sumEngagement(w.Posts90)
	}

	if agg.count > 0 {
		n := float64(agg.count)
		agg.avgEngagementRate = sumRate / n
		agg.avgGrowthRate = sumGrowth / n
		agg.avgPostCount = sumPosts / n
	}

	return agg
}

// scoreCompetitiveness benchmarks a brand against its tracked peers. Ratio
// denominators that collapse to zero despite usable peer data resolve to
// the component midpoint, mirroring the engagement pillar's fairness rule.
func scoreCompetitiveness(w *EntityWindows, peers *peerAggregate) (float64, models.MetricsMap) {
	if w.Entity.Role != models.RoleBrand || peers == nil || peers.count == 0 {
		return competitiveMidpoint, models.MetricsMap{"competitor_count": 0}
	}

	relEngagement := relativeScore(engagementRate(w), peers.avgEngagementRate, relEngagementMax)
	relGrowth := relativeScore(followerGrowthRate(w), math.Abs(peers.avgGrowthRate), relGrowthMax)
	relVolume := relativeScore(float64(len(w.Posts90)), peers.avgPostCount, relVolumeMax)

	brandEngagement := sumEngagement(w.Posts90)
	share := scoreEngagementShare(brandEngagement, peers)

	metrics := models.MetricsMap{
		"competitor_count":         float64(peers.count),
		"competitor_avg_eng_rate":  round2(peers.avgEngagementRate),
		"competitor_avg_growth":    round2(peers.avgGrowthRate * 100),
		"competitor_avg_posts":     round2(peers.avgPostCount),
		"brand_engagement_90d":     round2(brandEngagement),
		"competitor_engagement_90d": round2(peers.totalEngagement),
	}

	return relEngagement + relGrowth + relVolume + share, metrics
}

// relativeScore maps a brand/competitor ratio from [0.3, 1.5] onto
// [0, max]. A zero denominator means the comparison carries no signal and
// yields the component midpoint.
func relativeScore(brand, competitor, max float64) float64 {
	if competitor == 0 {
		return max / 2
	}
	return mapRange(brand/competitor, relRatioFloor, relRatioCeil, 0, max)
}

// scoreEngagementShare compares the brand's share of total engagement with
// the fair share 1/(competitor_count+1), rewarding a brand that captures
// more than its proportionate slice of the conversation.
func scoreEngagementShare(brandEngagement float64, peers *peerAggregate) float64 {
	total := brandEngagement + peers.totalEngagement
	if total == 0 {
		return shareMax / 2
	}

	fairShare := 1 / float64(peers.count+1)
	ratio := (brandEngagement / total) / fairShare
	return mapRange(ratio, relRatioFloor, shareRatioCeil, 0, shareMax)
}

func sumEngagement(posts []models.Post) float64 {
	var total float64
	for _, post := range posts {
		total += post.Engagement
	}
	return total
}
