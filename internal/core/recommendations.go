package core

import "strings"

// RecommendationBucket names one of the three recommendation lists.
type RecommendationBucket string

const (
	BucketRecruiter      RecommendationBucket = "for_recruiter"
	BucketCandidate      RecommendationBucket = "for_candidate"
	BucketInterviewFocus RecommendationBucket = "interview_focus"
)

// ClassifyRecommendation assigns a legacy flat-list recommendation to a
// bucket by substring heuristic. Precedence is fixed: interview phrases
// first, then candidate phrases, else recruiter. First match wins; do
// not disambiguate further.
func ClassifyRecommendation(text string) RecommendationBucket {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "interview") || strings.Contains(lower, "ask about") {
		return BucketInterviewFocus
	}
	if strings.Contains(lower, "candidate should") || strings.Contains(lower, "improve") {
		return BucketCandidate
	}
	return BucketRecruiter
}

// Append adds text to the named bucket.
func (r *Recommendations) Append(bucket RecommendationBucket, text string) {
	switch bucket {
	case BucketInterviewFocus:
		r.InterviewFocus = append(r.InterviewFocus, text)
	case BucketCandidate:
		r.ForCandidate = append(r.ForCandidate, text)
	default:
		r.ForRecruiter = append(r.ForRecruiter, text)
	}
}
