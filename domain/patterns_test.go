package domain

import "testing"

func TestAssessImpact(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Impact
	}{
		{0.95, ImpactHigh},
		{0.81, ImpactHigh},
		{0.8, ImpactMedium},
		{0.65, ImpactMedium},
		{0.6, ImpactLow},
		{0.3, ImpactLow},
	}

	for _, tt := range tests {
		m := PatternMatch{Confidence: tt.confidence}
		if got := m.AssessImpact(); got != tt.want {
			t.Errorf("AssessImpact() with confidence %g = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}

func TestImpactFromFrequency(t *testing.T) {
	tests := []struct {
		frequency int
		want      Impact
	}{
		{15, ImpactHigh},
		{10, ImpactHigh},
		{9, ImpactMedium},
		{5, ImpactMedium},
		{4, ImpactLow},
		{0, ImpactLow},
	}

	for _, tt := range tests {
		if got := ImpactFromFrequency(tt.frequency); got != tt.want {
			t.Errorf("ImpactFromFrequency(%d) = %q, want %q", tt.frequency, got, tt.want)
		}
	}
}

func TestImpactWeight(t *testing.T) {
	if ImpactHigh.Weight() != 1.0 || ImpactMedium.Weight() != 0.7 || ImpactLow.Weight() != 0.4 {
		t.Errorf("impact weights = %g, %g, %g; want 1.0, 0.7, 0.4",
			ImpactHigh.Weight(), ImpactMedium.Weight(), ImpactLow.Weight())
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []PatternCategory{CategoryDesign, CategoryPerformance, CategorySecurity, CategoryMaintainability}
	got := Categories()

	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
