package cache

import "testing"

func TestBuildSimulationKey(t *testing.T) {
	tests := []struct {
		scenario string
		region   string
		expected string
	}{
		{"baseline", "Tampa Bay", "simulate:baseline:tampa_bay"},
		{"CONTRAFLOW", "Miami", "simulate:contraflow:miami"},
		{"baseline", "  Port St. Lucie  ", "simulate:baseline:port_st._lucie"},
	}

	for _, tt := range tests {
		if got := BuildSimulationKey(tt.scenario, tt.region); got != tt.expected {
			t.Errorf("BuildSimulationKey(%q, %q) = %q, want %q", tt.scenario, tt.region, got, tt.expected)
		}
	}
}

func TestBuildSegmentsKey(t *testing.T) {
	if got := BuildSegmentsKey("Jacksonville"); got != "segments:jacksonville" {
		t.Errorf("unexpected key %q", got)
	}
	if got := BuildSegmentsKey(""); got != "segments:all" {
		t.Errorf("expected segments:all for empty region, got %q", got)
	}
}

func TestBuildMetroAreasKey(t *testing.T) {
	if got := BuildMetroAreasKey(); got != "msas:all" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestQuickHash(t *testing.T) {
	h1 := QuickHash([]byte("segments"))
	h2 := QuickHash([]byte("segments"))
	h3 := QuickHash([]byte("different"))

	if h1 != h2 {
		t.Error("hash should be deterministic")
	}
	if h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
}

func TestShortHash(t *testing.T) {
	h := ShortHash([]byte("segments"))
	if len(h) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(h))
	}
}
