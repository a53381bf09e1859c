package scanner

import "github.com/wizelements/saas-opportunity-bot/internal/model"

// Score computes an opportunity's priority. It depends only on the record's
// signals, industries, engagement and comment count.
func Score(o model.Opportunity) int {
	score := 10*len(o.PainSignals) + 5*len(o.Industries)
	return score + engagementBucket(o.Score) + commentBucket(o.Comments())
}

func engagementBucket(score int) int {
	switch {
	case score > 100:
		return 20
	case score > 50:
		return 10
	case score > 10:
		return 5
	default:
		return 0
	}
}

func commentBucket(n int) int {
	switch {
	case n > 50:
		return 15
	case n > 20:
		return 10
	case n > 5:
		return 5
	default:
		return 0
	}
}

// withPriority returns o with PriorityScore set.
func withPriority(o model.Opportunity) model.Opportunity {
	o.PriorityScore = model.IntPtr(Score(o))
	return o
}
