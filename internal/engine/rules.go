package engine

import (
	"strings"
)

// =============================================================================
// Contraflow Reversal Rules
// =============================================================================
//
// During a contraflow evacuation, transport authorities reverse the inbound
// lanes of major highways so that both carriageways carry outbound traffic.
// Which headings get reversed depends on where the metro area sits relative
// to the coast: gulf-coast metros push traffic east and north, so their
// south- and westbound lanes flip; atlantic-coast metros push west and
// north, so south- and eastbound lanes flip.
//
// The rules are kept as an explicit data table so that adding a metro area
// is a one-line change.
// =============================================================================

// Direction is a bitmask of compass heading flags derived from segment
// geometry. A segment running south-west carries both the Southbound and
// Westbound flags.
type Direction uint8

const (
	// Southbound marks segments whose geometry trends south (dy < 0).
	Southbound Direction = 1 << iota
	// Westbound marks segments whose geometry trends west (dx < 0).
	Westbound
	// Eastbound marks segments whose geometry trends east (dx > 0).
	Eastbound
)

// DirectionNone means the heading could not be determined (degenerate or
// missing geometry).
const DirectionNone Direction = 0

// Has reports whether any of the given flags are set.
func (d Direction) Has(flags Direction) bool {
	return d&flags != 0
}

// String returns a compact flag listing, e.g. "SB|WB".
func (d Direction) String() string {
	if d == DirectionNone {
		return "NONE"
	}
	var parts []string
	if d.Has(Southbound) {
		parts = append(parts, "SB")
	}
	if d.Has(Westbound) {
		parts = append(parts, "WB")
	}
	if d.Has(Eastbound) {
		parts = append(parts, "EB")
	}
	return strings.Join(parts, "|")
}

// HeadingDirections classifies a segment heading into direction flags.
// dx and dy are the longitude and latitude deltas from the first to the
// last geometry coordinate. A zero heading yields DirectionNone.
func HeadingDirections(dx, dy float64) Direction {
	var flags Direction
	if dy < 0 {
		flags |= Southbound
	}
	if dx < 0 {
		flags |= Westbound
	}
	if dx > 0 {
		flags |= Eastbound
	}
	return flags
}

// reversalRule binds a set of region name markers to the headings that get
// reversed under contraflow in those metro areas.
type reversalRule struct {
	markers  []string
	reversed Direction
}

// reversalRules is evaluated top to bottom; the first rule whose marker
// appears in the region name wins.
var reversalRules = []reversalRule{
	{markers: []string{"TAMPA", "SARASOTA"}, reversed: Southbound | Westbound},
	{markers: []string{"ORLANDO", "DAYTONA", "LAKELAND"}, reversed: Southbound | Westbound},
	{markers: []string{"MIAMI", "SOUTH FL", "PORT ST. LUCIE", "MELBOURNE"}, reversed: Southbound | Eastbound},
	{markers: []string{"CAPE CORAL", "NAPLES", "FORT MYERS"}, reversed: Southbound | Eastbound},
	{markers: []string{"JACKSONVILLE"}, reversed: Southbound | Eastbound},
	{markers: []string{"TALLAHASSEE", "PENSACOLA"}, reversed: Southbound | Eastbound},
}

// fallbackReversal applies when no rule matches the region name. Southbound
// reversal is the safe statewide default for hurricane evacuations.
const fallbackReversal = Southbound

// ReversalDirections returns the heading flags that are reversed under
// contraflow for the given region. Matching is a case-insensitive substring
// check against the rule markers; the first matching rule wins.
func ReversalDirections(region string) Direction {
	upper := strings.ToUpper(region)
	for _, rule := range reversalRules {
		for _, marker := range rule.markers {
			if strings.Contains(upper, marker) {
				return rule.reversed
			}
		}
	}
	return fallbackReversal
}
