package entity

import (
	"math"
	"sort"
)

// RatingSample is one visible review's rating joined with its author's kind.
type RatingSample struct {
	Rating       float64     `bson:"rating"`
	ReviewerKind AccountKind `bson:"reviewer_kind"`
}

// PlaceAggregates is what the rating aggregator writes back to a place.
type PlaceAggregates struct {
	Ratings     PlaceRatings
	ReviewCount PlaceReviewCount
}

// ComputeAggregates derives a place's aggregates from its visible review set.
// Reviewers of kinds other than student and public count only toward overall.
// The result depends only on the multiset of samples: they are summed in a
// fixed order so the float result does not depend on query order.
func ComputeAggregates(samples []RatingSample) PlaceAggregates {
	sorted := make([]RatingSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating < sorted[j].Rating
		}
		return sorted[i].ReviewerKind < sorted[j].ReviewerKind
	})
	var all, student, public bucket
	for _, s := range sorted {
		all.add(s.Rating)
		switch s.ReviewerKind {
		case AccountKindStudent:
			student.add(s.Rating)
		case AccountKindPublic:
			public.add(s.Rating)
		}
	}
	return PlaceAggregates{
		Ratings: PlaceRatings{
			Overall: all.mean(),
			Student: student.mean(),
			Public:  public.mean(),
		},
		ReviewCount: PlaceReviewCount{
			Total:   all.n,
			Student: student.n,
			Public:  public.n,
		},
	}
}

type bucket struct {
	sum float64
	n   int
}

func (b *bucket) add(v float64) {
	b.sum += v
	b.n++
}

func (b bucket) mean() float64 {
	if b.n == 0 {
		return 0
	}
	return RoundRating(b.sum / float64(b.n))
}

// RoundRating rounds to one decimal place, half away from zero.
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
