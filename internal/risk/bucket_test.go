package risk

import (
	"testing"

	"ChurnSentinel/internal/model"
)

func TestBucket_AllBoundaries(t *testing.T) {
	tests := []struct {
		p     float64
		level model.RiskLevel
	}{
		{0.0, model.RiskLow},
		{0.15, model.RiskLow},
		{0.2999, model.RiskLow},
		{0.30, model.RiskMedium},
		{0.45, model.RiskMedium},
		{0.5999, model.RiskMedium},
		{0.60, model.RiskHigh},
		{0.85, model.RiskHigh},
		{1.0, model.RiskHigh},
	}
	for _, tt := range tests {
		if got := Bucket(tt.p); got != tt.level {
			t.Errorf("p=%.4f: expected %s, got %s", tt.p, tt.level, got)
		}
	}
}

func TestBucket_Labels(t *testing.T) {
	tests := []struct {
		p     float64
		label string
	}{
		{0.1, "🟢 Low Risk"},
		{0.3, "🟡 Medium Risk"},
		{0.6, "🔴 High Risk"},
	}
	for _, tt := range tests {
		if got := Bucket(tt.p).Label(); got != tt.label {
			t.Errorf("p=%.2f: expected %q, got %q", tt.p, tt.label, got)
		}
	}
}

func TestBuckets_OrderedHighestFirst(t *testing.T) {
	for i := 1; i < len(buckets); i++ {
		if buckets[i].MinProbability >= buckets[i-1].MinProbability {
			t.Fatalf("bucket %d (%.2f) not below bucket %d (%.2f)",
				i, buckets[i].MinProbability, i-1, buckets[i-1].MinProbability)
		}
	}
	for _, b := range buckets {
		if got := Bucket(b.MinProbability); got != b.Level {
			t.Errorf("p=%.2f: expected %s, got %s", b.MinProbability, b.Level, got)
		}
	}
}
