package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingDirections(t *testing.T) {
	tests := []struct {
		name string
		dx   float64
		dy   float64
		want Direction
	}{
		{"due south", 0, -1, Southbound},
		{"due west", -1, 0, Westbound},
		{"due east", 1, 0, Eastbound},
		{"southwest carries both flags", -0.5, -0.5, Southbound | Westbound},
		{"southeast carries both flags", 0.5, -0.5, Southbound | Eastbound},
		{"due north", 0, 1, DirectionNone},
		{"degenerate geometry", 0, 0, DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeadingDirections(tt.dx, tt.dy))
		})
	}
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "SB|WB", (Southbound | Westbound).String())
	assert.Equal(t, "EB", Eastbound.String())
	assert.Equal(t, "NONE", DirectionNone.String())
}

func TestReversalDirections(t *testing.T) {
	tests := []struct {
		region string
		want   Direction
	}{
		{"Tampa Bay", Southbound | Westbound},
		{"SARASOTA COUNTY", Southbound | Westbound},
		{"Orlando Metro", Southbound | Westbound},
		{"Lakeland-Winter Haven", Southbound | Westbound},
		{"Miami-Dade", Southbound | Eastbound},
		{"South FL Coast", Southbound | Eastbound},
		{"Port St. Lucie", Southbound | Eastbound},
		{"Cape Coral / Fort Myers", Southbound | Eastbound},
		{"Jacksonville", Southbound | Eastbound},
		{"Pensacola MSA", Southbound | Eastbound},
		{"Unknown Region", Southbound},
		{"", Southbound},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			assert.Equal(t, tt.want, ReversalDirections(tt.region))
		})
	}
}

func TestReversalDirections_FirstMatchWins(t *testing.T) {
	// Tampa rule precedes Miami rule in the table
	assert.Equal(t, Southbound|Westbound, ReversalDirections("TAMPA TO MIAMI CORRIDOR"))
}
