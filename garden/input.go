package garden

import "math"

// Point is a position in garden-world coordinates, relative to the centre.
type Point struct {
	X, Y float64
}

// pointer records pointer state between ticks. Handlers only record; the
// field is mutated inside Tick.
type pointer struct {
	active  bool
	pos     Point
	pending []Point
	// pressed is set when the press point was already applied, so the next
	// drain does not fall back to it.
	pressed bool

	step       float64
	maxPending int
}

func newPointer(step float64, maxPending int) pointer {
	return pointer{
		step:       step,
		maxPending: maxPending,
		pending:    make([]Point, 0, maxPending),
	}
}

// down starts a stroke at pt. Points still queued from an earlier stroke
// are kept. When applied is true the caller has already disturbed pt.
func (p *pointer) down(pt Point, applied bool) {
	p.active = true
	p.pos = pt
	p.pressed = applied
	if !applied {
		p.push(pt)
	}
}

// move queues sub-points every step units along the segment from the last
// recorded position, so fast drags still touch every cell they cross.
func (p *pointer) move(pt Point) {
	if !p.active {
		return
	}
	dx, dy := pt.X-p.pos.X, pt.Y-p.pos.Y
	dist := math.Hypot(dx, dy)
	if p.step > 0 && dist > p.step {
		n := int(dist / p.step)
		for k := 1; k <= n; k++ {
			t := float64(k) * p.step / dist
			if t >= 1 {
				break
			}
			p.push(Point{p.pos.X + dx*t, p.pos.Y + dy*t})
		}
	}
	p.push(pt)
	p.pos = pt
}

// up ends the stroke. Queued points are still applied by the next tick.
func (p *pointer) up() {
	p.active = false
	p.pressed = false
}

// discard drops queued points; a held pointer stays held.
func (p *pointer) discard() {
	p.pressed = false
	p.pending = p.pending[:0]
}

// push appends to the queue, dropping the oldest point when full.
func (p *pointer) push(pt Point) {
	if p.maxPending <= 0 {
		return
	}
	if len(p.pending) >= p.maxPending {
		copy(p.pending, p.pending[1:])
		p.pending = p.pending[:len(p.pending)-1]
	}
	p.pending = append(p.pending, pt)
}

// drain returns the points to disturb this tick. With nothing queued a held
// pointer keeps working the spot it rests on, except on the first tick after
// a press that was applied immediately.
func (p *pointer) drain(dst []Point) []Point {
	dst = append(dst[:0], p.pending...)
	p.pending = p.pending[:0]
	skipRest := p.pressed
	p.pressed = false
	if len(dst) == 0 && p.active && !skipRest {
		dst = append(dst, p.pos)
	}
	return dst
}
