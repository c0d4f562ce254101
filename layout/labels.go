package layout

import (
	"math"
	"sort"
)

// Placer nudges labels along one axis so that they do not overlap, stay close to their anchors, and stay inside the extent. It is a relaxation: every round each label is pulled towards its anchor, pushed back inside the extent, and pushed away from the labels it overlaps, with the forces decaying as the rounds progress.
type Placer struct {
	AnchorForce   float64 // divisor of the pull towards the anchor
	OverlapForce  float64 // divisor of the push away from overlapping labels
	BoundaryForce float64 // divisor of the push back inside the extent
	Multiplier    float64 // growth of the iteration number per round
	Threshold     int     // summed truncated forces below which the solver stops
	MaxRounds     int     // upper bound on the number of rounds
}

// DefaultPlacer is the placer used by Place.
var DefaultPlacer = Placer{
	AnchorForce:   10.0,
	OverlapForce:  2.0,
	BoundaryForce: 10.0,
	Multiplier:    2.0,
	Threshold:     1,
	MaxRounds:     64,
}

// Placement is the result of placing labels.
type Placement struct {
	Positions map[float64]float64 // anchor => placed centre
	Converged bool                // false when the solver was cut off
	Rounds    int
}

// Place places labels, a map from anchor to footprint, within extent using DefaultPlacer.
func Place(extent Extent, labels map[float64]float64) Placement {
	return DefaultPlacer.Place(extent, labels)
}

// Place returns a position for every anchor in labels, and only for those. The result is a best effort: overlap may remain when the labels do not fit in the extent.
func (p Placer) Place(extent Extent, labels map[float64]float64) Placement {
	// order anchors so that ties are broken the same way every time
	anchors := make([]float64, 0, len(labels))
	for anchor := range labels {
		anchors = append(anchors, anchor)
	}
	sort.Float64s(anchors)

	positions := make([]float64, len(anchors))
	copy(positions, anchors)

	multiplier := p.Multiplier
	if multiplier < 1.0 {
		multiplier = 1.0
	}
	maxRounds := p.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultPlacer.MaxRounds
	}

	converged := len(anchors) == 0
	rounds := 0
	iteration := 1.0
	forces := make([]float64, len(anchors))
	for !converged && rounds < maxRounds {
		rounds++
		for i := range anchors {
			forces[i] = p.force(extent, anchors, positions, labels, i) / iteration
		}

		if !finite(forces) {
			break
		}
		activity := 0.0
		for i, force := range forces {
			positions[i] += force
			activity += math.Trunc(math.Abs(force))
		}
		converged = activity < float64(p.Threshold)
		iteration *= multiplier
	}

	placement := Placement{
		Positions: make(map[float64]float64, len(anchors)),
		Converged: converged,
		Rounds:    rounds,
	}
	for i, anchor := range anchors {
		placement.Positions[anchor] = positions[i]
	}
	return placement
}

// force returns the undecayed force on label i.
func (p Placer) force(extent Extent, anchors, positions []float64, labels map[float64]float64, i int) float64 {
	anchor, pos := anchors[i], positions[i]
	half := labels[anchor] / 2.0
	lo, hi := pos-half, pos+half

	force := (anchor - pos) / p.AnchorForce
	if lo < extent.Min {
		force += (extent.Min - lo) / p.BoundaryForce
	}
	if extent.Max < hi {
		force -= (hi - extent.Max) / p.BoundaryForce
	}
	for j, other := range anchors {
		if j == i {
			continue
		}
		otherPos := positions[j]
		otherHalf := labels[other] / 2.0
		overlap := math.Min(hi, otherPos+otherHalf) - math.Max(lo, otherPos-otherHalf)
		if overlap <= 0.0 {
			continue
		}
		if pos < otherPos || pos == otherPos && anchor < other {
			force -= overlap / p.OverlapForce
		} else {
			force += overlap / p.OverlapForce
		}
	}
	return force
}

func finite(fs []float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
