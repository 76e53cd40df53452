package core

import "testing"

func TestClassifyRecommendation(t *testing.T) {
	tests := []struct {
		text string
		want RecommendationBucket
	}{
		{"Interview for system design depth", BucketInterviewFocus},
		{"Ask about the migration project", BucketInterviewFocus},
		{"Candidate should broaden cloud skills", BucketCandidate},
		{"Needs to improve written communication", BucketCandidate},
		{"Move to the next round quickly", BucketRecruiter},
		// Interview phrases win over candidate phrases.
		{"Interview the candidate; they should improve testing", BucketInterviewFocus},
	}
	for _, tt := range tests {
		if got := ClassifyRecommendation(tt.text); got != tt.want {
			t.Errorf("ClassifyRecommendation(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestRecommendationsAppend(t *testing.T) {
	var recs Recommendations
	recs.Append(BucketInterviewFocus, "a")
	recs.Append(BucketCandidate, "b")
	recs.Append(BucketRecruiter, "c")
	recs.Append("unknown", "d") // defaults to recruiter

	if len(recs.InterviewFocus) != 1 || len(recs.ForCandidate) != 1 || len(recs.ForRecruiter) != 2 {
		t.Errorf("got %+v", recs)
	}
}
