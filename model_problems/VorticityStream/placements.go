package VorticityStream

import (
	"math"
	"math/rand"
)

// Placement patterns for multi-vortex initial fields. Each pattern expands to
// the [x0, y0, circulation, coreRadius] tuples the MultiVortex generator
// consumes, so a configuration can say "12 vortices on a circle" instead of
// spelling out 48 coefficients.
const (
	PlacementSingle   = "Single"
	PlacementGrid     = "Grid"
	PlacementCircular = "Circular"
	PlacementRandom   = "Random"
)

// randomPlacementAttempts bounds the rejection sampling per vortex before the
// domain is declared too crowded for the requested separation.
const randomPlacementAttempts = 1000

// VortexPlacements generates MultiVortex coefficients for count vortices of
// the given circulation and core radius, positioned by pattern over the
// periodic [0,lx) x [0,ly) domain:
//
//	Single   - one vortex at the domain center (count must be 1)
//	Grid     - cell centers of the smallest near-square grid holding count
//	Circular - evenly spaced on a circle of radius min(lx,ly)/4 at the center
//	Random   - seeded uniform draws kept 3 core radii apart (minimum image)
//
// The result is deterministic for a given seed; seed only matters for Random.
func VortexPlacements(pattern string, count int, lx, ly, gamma, rc float64, seed int64) (coeffs []float64, err error) {
	if count < 1 {
		return nil, &InvalidInitialConditionError{Name: pattern, Reason: "vortex count must be at least 1"}
	}
	if lx <= 0 || ly <= 0 || rc <= 0 {
		return nil, &InvalidInitialConditionError{Name: pattern, Reason: "domain lengths and core radius must be positive"}
	}
	add := func(x, y float64) {
		coeffs = append(coeffs, x, y, gamma, rc)
	}
	switch pattern {
	case PlacementSingle:
		if count != 1 {
			return nil, &InvalidInitialConditionError{Name: pattern, Reason: "Single placement holds exactly one vortex"}
		}
		add(lx/2, ly/2)
	case PlacementGrid:
		cols := int(math.Ceil(math.Sqrt(float64(count))))
		rows := (count + cols - 1) / cols
		n := 0
		for j := 0; j < rows && n < count; j++ {
			for i := 0; i < cols && n < count; i++ {
				add((float64(i)+0.5)*lx/float64(cols), (float64(j)+0.5)*ly/float64(rows))
				n++
			}
		}
	case PlacementCircular:
		r := math.Min(lx, ly) / 4
		for k := 0; k < count; k++ {
			th := 2 * math.Pi * float64(k) / float64(count)
			add(lx/2+r*math.Cos(th), ly/2+r*math.Sin(th))
		}
	case PlacementRandom:
		rng := rand.New(rand.NewSource(seed))
		minSep := 3 * rc
		var xs, ys []float64
		for k := 0; k < count; k++ {
			placed := false
			for attempt := 0; attempt < randomPlacementAttempts; attempt++ {
				x, y := rng.Float64()*lx, rng.Float64()*ly
				ok := true
				for q := range xs {
					dx := minImage(x-xs[q], lx)
					dy := minImage(y-ys[q], ly)
					if math.Hypot(dx, dy) < minSep {
						ok = false
						break
					}
				}
				if ok {
					xs, ys = append(xs, x), append(ys, y)
					add(x, y)
					placed = true
					break
				}
			}
			if !placed {
				return nil, &InvalidInitialConditionError{Name: pattern,
					Reason: "domain too crowded to keep vortices three core radii apart"}
			}
		}
	default:
		return nil, &InvalidInitialConditionError{Name: pattern, Reason: "unknown placement pattern"}
	}
	return coeffs, nil
}
