package domain

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestRoadSegment_HasEndpoints(t *testing.T) {
	seg := RoadSegment{Source: int64Ptr(1), Target: int64Ptr(2)}
	if !seg.HasEndpoints() {
		t.Error("segment with both endpoints should pass")
	}

	seg.Target = nil
	if seg.HasEndpoints() {
		t.Error("segment with missing target should fail")
	}
}

func TestRoadSegment_EffectiveCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		expected float64
	}{
		{"positive capacity kept", 2400, 2400},
		{"zero falls back to default", 0, DefaultCapacityVPH},
		{"negative falls back to default", -100, DefaultCapacityVPH},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seg := RoadSegment{CapacityVPH: tt.capacity}
			if got := seg.EffectiveCapacity(); got != tt.expected {
				t.Errorf("EffectiveCapacity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRoadSegment_IsMajorHighway(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"I-75 MAJOR HWY NB", true},
		{"i-4 major hwy", true},
		{"US-301 Major Hwy Conn", true},
		{"SR-60 Arterial", false},
		{"", false},
	}

	for _, tt := range tests {
		seg := RoadSegment{RoadName: tt.name}
		if got := seg.IsMajorHighway(); got != tt.expected {
			t.Errorf("IsMajorHighway(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestRoadSegment_Heading(t *testing.T) {
	seg := RoadSegment{Geometry: []Coordinate{
		{Lon: -82.5, Lat: 28.0},
		{Lon: -82.6, Lat: 27.5},
	}}

	dx, dy := seg.Heading()
	if !FloatEquals(dx, -0.1) {
		t.Errorf("dx = %v, want -0.1", dx)
	}
	if !FloatEquals(dy, -0.5) {
		t.Errorf("dy = %v, want -0.5", dy)
	}
}

func TestRoadSegment_Heading_Degenerate(t *testing.T) {
	seg := RoadSegment{Geometry: []Coordinate{{Lon: -82.5, Lat: 28.0}}}
	dx, dy := seg.Heading()
	if dx != 0 || dy != 0 {
		t.Errorf("degenerate geometry should yield (0, 0), got (%v, %v)", dx, dy)
	}
}

func TestParseScenario(t *testing.T) {
	tests := []struct {
		input    string
		expected Scenario
	}{
		{"contraflow", ScenarioContraflow},
		{"CONTRAFLOW", ScenarioContraflow},
		{" Contraflow ", ScenarioContraflow},
		{"baseline", ScenarioBaseline},
		{"", ScenarioBaseline},
		{"hurricane", ScenarioBaseline},
	}

	for _, tt := range tests {
		if got := ParseScenario(tt.input); got != tt.expected {
			t.Errorf("ParseScenario(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
