package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a drawing coordinate in DXF units.
type point struct {
	X, Y float64
}

// shape is a closed outline read from a drawing.
type shape []point

// bounds returns the min and max corners of the shape.
func (s shape) bounds() (lo, hi point) {
	if len(s) == 0 {
		return point{}, point{}
	}
	lo, hi = s[0], s[0]
	for _, p := range s[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// area computes the absolute area of the shape using the shoelace formula.
func (s shape) area() float64 {
	n := len(s)
	if n < 3 {
		return 0
	}
	var a float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += s[i].X*s[j].Y - s[j].X*s[i].Y
	}
	return math.Abs(a) / 2
}

// segment joins two points; loose LINE and ARC entities are chained into
// closed shapes from these.
type segment struct {
	start, end point
}

// ImportDXF imports rect sizes from a DXF drawing. Every closed shape
// (LWPOLYLINE, CIRCLE, or a loop of connected LINEs and ARCs) becomes one
// item sized to its bounding box, rounded up to whole pixels, with one
// drawing unit taken as one pixel. TEXT entities are not read.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []shape
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			s := lwPolylineShape(e)
			if len(s) >= 3 {
				shapes = append(shapes, s)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}
		case *entity.Circle:
			shapes = append(shapes, circleShape(e, 64))
		case *entity.Arc:
			segments = append(segments, pointsToSegments(arcPoints(e, 32))...)
		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	shapes = append(shapes, chainSegments(segments, 0.01)...)
	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, s := range shapes {
		lo, hi := s.bounds()
		w := math.Ceil(hi.X - lo.X - 1e-6)
		h := math.Ceil(hi.Y - lo.Y - 1e-6)
		if w < 1 || h < 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", hi.X-lo.X, hi.Y-lo.Y))
			continue
		}
		if w > math.MaxUint32 || h > math.MaxUint32 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Shape %d: size %.0f x %.0f out of range", i+1, w, h))
			continue
		}
		result.Items = append(result.Items, Item{
			Name:     fmt.Sprintf("shape_%d", len(result.Items)+1),
			W:        uint32(w),
			H:        uint32(h),
			Quantity: 1,
		})
	}

	return result
}

// lwPolylineShape converts a LWPOLYLINE to a shape. Vertices with a bulge
// contribute the points of the arc to the next vertex.
func lwPolylineShape(lw *entity.LwPolyline) shape {
	var s shape
	for i, v := range lw.Vertices {
		cur := point{X: v[0], Y: v[1]}
		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) <= 1e-9 {
			s = append(s, cur)
			continue
		}
		nv := lw.Vertices[(i+1)%len(lw.Vertices)]
		arc := bulgeArc(cur, point{X: nv[0], Y: nv[1]}, bulge, 32)
		s = append(s, arc[:len(arc)-1]...)
	}
	return s
}

// bulgeArc samples the arc between two vertices. The bulge is the tangent
// of a quarter of the included angle; positive bulges run counter-clockwise.
func bulgeArc(p1, p2 point, bulge float64, steps int) shape {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return shape{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	px, py := -dy/chord, dx/chord
	if bulge > 0 {
		px, py = -px, -py
	}
	dist := radius - sagitta
	cx := (p1.X+p2.X)/2 + px*dist
	cy := (p1.Y+p2.Y)/2 + py*dist

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	end := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make(shape, steps+1)
	for i := range pts {
		a := start + float64(i)/float64(steps)*(end-start)
		pts[i] = point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return pts
}

func circleShape(c *entity.Circle, steps int) shape {
	s := make(shape, steps)
	for i := range s {
		a := 2 * math.Pi * float64(i) / float64(steps)
		s[i] = point{X: c.Center[0] + c.Radius*math.Cos(a), Y: c.Center[1] + c.Radius*math.Sin(a)}
	}
	return s
}

// arcPoints samples an ARC entity. Angles are in degrees, counter-clockwise.
func arcPoints(a *entity.Arc, steps int) []point {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}
	pts := make([]point, steps+1)
	for i := range pts {
		ang := start + float64(i)/float64(steps)*(end-start)
		pts[i] = point{X: cx + r*math.Cos(ang), Y: cy + r*math.Sin(ang)}
	}
	return pts
}

func pointsToSegments(pts []point) []segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments joins segments whose endpoints lie within tolerance into
// closed shapes, largest first. Open chains are dropped.
func chainSegments(segs []segment, tolerance float64) []shape {
	used := make([]bool, len(segs))
	var shapes []shape

	for first := range segs {
		if used[first] {
			continue
		}
		used[first] = true
		chain := shape{segs[first].start, segs[first].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case near(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case near(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) < 4 || !near(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		shapes = append(shapes, chain[:len(chain)-1])
	}

	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].area() > shapes[j].area()
	})
	return shapes
}

func near(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
