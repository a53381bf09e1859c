package scanner

import (
	"cmp"
	"iter"
	"slices"
	"strings"

	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

// overFetch is how many matches RunScan collects per requested result before
// it stops pulling from the source.
const overFetch = 3

// Rank sorts opps by descending priority. Equal scores keep input order.
func Rank(opps []model.Opportunity) {
	slices.SortStableFunc(opps, func(a, b model.Opportunity) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
}

// RunScan scores records from seq, keeps those tagged with industryFilter
// (any industry when empty) and returns the best limit of them.
//
// It stops pulling after overFetch*limit matches, so when the source holds
// more matches than that the result is the top of a prefix, not the global
// top-limit.
func RunScan(seq iter.Seq[model.Opportunity], industryFilter string, limit int) []model.Opportunity {
	var opps []model.Opportunity
	for o := range seq {
		o = withPriority(o)
		if industryFilter != "" && !HasIndustry(o, industryFilter) {
			continue
		}

		opps = append(opps, o)
		if len(opps) >= limit*overFetch {
			break
		}
	}

	Rank(opps)
	if len(opps) > limit {
		opps = opps[:limit]
	}
	return opps
}

// Collect drains seq, scoring every record. onFound, if set, sees each
// record as it arrives.
func Collect(seq iter.Seq[model.Opportunity], onFound func(model.Opportunity)) []model.Opportunity {
	var opps []model.Opportunity
	for o := range seq {
		o = withPriority(o)
		if onFound != nil {
			onFound(o)
		}
		opps = append(opps, o)
	}
	return opps
}

func HasIndustry(o model.Opportunity, industry string) bool {
	for _, ind := range o.Industries {
		if strings.EqualFold(ind, industry) {
			return true
		}
	}
	return false
}
