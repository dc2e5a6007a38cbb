package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creatorstation/fibboscore/internal/models"
)

func TestScoreContentZeroPostsSumsTheFloors(t *testing.T) {
	w := &EntityWindows{Entity: models.Entity{ID: "e"}}

	score, _ := scoreContent(w)

	assert.InDelta(t, formatFloor+diversityFloor+consistencyFloor+liftFloor, score, 1e-9)
	assert.InDelta(t, 12.5, score, 1e-9)
}

func TestScoreFormat(t *testing.T) {
	mk := func(format string, engagement float64) models.Post {
		return models.Post{Format: format, Engagement: engagement}
	}

	t.Run("most used format is also the best", func(t *testing.T) {
		posts := []models.Post{mk("reel", 100), mk("reel", 200), mk("image", 50)}
		assert.InDelta(t, formatMax, scoreFormat(posts), 1e-9)
	})

	t.Run("most used format underperforms", func(t *testing.T) {
		// "image" is used most at avg 50, "reel" performs best at avg 100;
		// ratio 0.5 maps from [0.3, 1] onto [3, 8].
		posts := []models.Post{mk("image", 40), mk("image", 50), mk("image", 60), mk("reel", 100)}
		assert.InDelta(t, 4.428571, scoreFormat(posts), 1e-5)
	})

	t.Run("ratio below range clamps to 3", func(t *testing.T) {
		posts := []models.Post{mk("image", 1), mk("image", 1), mk("reel", 1000)}
		assert.InDelta(t, 3.0, scoreFormat(posts), 1e-9)
	})
}

func TestScoreDiversity(t *testing.T) {
	t.Run("no hashtags at all uses the floor", func(t *testing.T) {
		score, _, _ := scoreDiversity([]models.Post{{}, {}})
		assert.Equal(t, diversityFloor, score)
	})

	t.Run("varied vocabulary scores high", func(t *testing.T) {
		// 10 uses, 3 unique: 3/(10*0.3) = 1, the cap.
		posts := []models.Post{
			{Hashtags: []string{"a", "b", "c", "a", "b"}},
			{Hashtags: []string{"a", "b", "c", "a", "c"}},
		}
		score, unique, uses := scoreDiversity(posts)
		assert.InDelta(t, diversityMax, score, 1e-9)
		assert.Equal(t, 3.0, unique)
		assert.Equal(t, 10.0, uses)
	})

	t.Run("repetitive vocabulary scores low", func(t *testing.T) {
		// 10 uses, 1 unique: 1/3 of the way across [0,1] mapped to [1,6].
		posts := []models.Post{
			{Hashtags: []string{"a", "a", "a", "a", "a"}},
			{Hashtags: []string{"a", "a", "a", "a", "a"}},
		}
		score, _, _ := scoreDiversity(posts)
		assert.InDelta(t, 2.666667, score, 1e-5)
	})
}

func TestScoreConsistency(t *testing.T) {
	t.Run("small sample uses the floor", func(t *testing.T) {
		posts := make([]models.Post, 9)
		score, _ := scoreConsistency(posts)
		assert.Equal(t, consistencyFloor, score)
	})

	t.Run("uniform output scores max", func(t *testing.T) {
		posts := make([]models.Post, 10)
		for i := range posts {
			posts[i].Engagement = 100
		}
		score, ratio := scoreConsistency(posts)
		assert.InDelta(t, consistencyMax, score, 1e-9)
		assert.InDelta(t, 1.0, ratio, 1e-9)
	})

	t.Run("hit-driven output scores low", func(t *testing.T) {
		// One 500-engagement hit over nine 50s: top decile ratio 5.26,
		// clamped to the top of the inverted range.
		posts := make([]models.Post, 10)
		posts[0].Engagement = 500
		for i := 1; i < 10; i++ {
			posts[i].Engagement = 50
		}
		score, _ := scoreConsistency(posts)
		assert.InDelta(t, 0.0, score, 1e-9)
	})
}

func TestScoreHashtagLift(t *testing.T) {
	tagged := func(engagement float64) models.Post {
		return models.Post{Engagement: engagement, Hashtags: []string{"x"}}
	}
	untagged := func(engagement float64) models.Post {
		return models.Post{Engagement: engagement}
	}

	t.Run("small sample uses the floor", func(t *testing.T) {
		score, _ := scoreHashtagLift([]models.Post{tagged(100), untagged(100)})
		assert.Equal(t, liftFloor, score)
	})

	t.Run("only tagged posts uses the floor", func(t *testing.T) {
		posts := []models.Post{tagged(1), tagged(2), tagged(3), tagged(4), tagged(5)}
		score, _ := scoreHashtagLift(posts)
		assert.Equal(t, liftFloor, score)
	})

	t.Run("strong lift caps the score", func(t *testing.T) {
		posts := []models.Post{tagged(150), tagged(150), tagged(150), untagged(100), untagged(100)}
		score, ratio := scoreHashtagLift(posts)
		assert.InDelta(t, liftMax, score, 1e-9)
		assert.InDelta(t, 1.5, ratio, 1e-9)
	})

	t.Run("middling lift maps linearly", func(t *testing.T) {
		// ratio 1.15 is halfway across [0.8, 1.5].
		posts := []models.Post{tagged(115), tagged(115), tagged(115), untagged(100), untagged(100)}
		score, _ := scoreHashtagLift(posts)
		assert.InDelta(t, liftMax/2, score, 1e-9)
	})
}
