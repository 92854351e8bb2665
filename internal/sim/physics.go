package sim

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Terrain is the read-only block query handed to entities on update.
// Indices are stable for the duration of one tick.
type Terrain interface {
	Len() int
	At(i int) Block
}

// Bumper applies the effect of a player striking block i from below.
type Bumper interface {
	Bump(i int, p *Player)
}

// edgeEps absorbs float rounding when comparing a previous edge against a block edge.
const edgeEps = 1e-6

// resolveX corrects box after a horizontal move of vx. width is the
// entity's nominal width, so snapped positions carry no rounding from box.
// Only blocks the box entered through its leading edge are considered, and the
// snap goes to the nearest such edge: min Left when moving right, max Right when
// moving left. The result does not depend on block order.
func resolveX(t Terrain, box core.Box, vx, width float64) (left float64, hit bool) {
	left = box.Left
	if vx == 0 {
		return left, false
	}

	edge := math.Inf(1)
	if vx < 0 {
		edge = math.Inf(-1)
	}
	prevLeft, prevRight := box.Left-vx, box.Right-vx

	for i := range t.Len() {
		b := t.At(i)
		if !b.Type.Solid() || !core.Overlaps(box, b.Box) {
			continue
		}
		if vx > 0 && b.Box.Left >= prevRight-edgeEps {
			edge = math.Min(edge, b.Box.Left)
			hit = true
		} else if vx < 0 && b.Box.Right <= prevLeft+edgeEps {
			edge = math.Max(edge, b.Box.Right)
			hit = true
		}
	}

	if !hit {
		return left, false
	}
	if vx > 0 {
		return edge - width, true
	}
	return edge, true
}

// resolveY corrects box after a vertical move of vy.
// Falling snaps onto the highest top among entered blocks. Rising snaps
// under the lowest bottom and reports the single struck block: the entered
// block with the largest bottom, then the widest horizontal overlap, then
// the smallest Left. struck is -1 when nothing was struck.
func resolveY(t Terrain, box core.Box, vy, height float64) (top float64, hit bool, struck int) {
	top = box.Top
	struck = -1
	if vy == 0 {
		return top, false, struck
	}

	prevTop, prevBottom := box.Top-vy, box.Bottom-vy
	edge := math.Inf(1)
	if vy < 0 {
		edge = math.Inf(-1)
	}
	var bestOverlap, bestLeft float64

	for i := range t.Len() {
		b := t.At(i)
		if !b.Type.Solid() || !core.Overlaps(box, b.Box) {
			continue
		}
		if vy > 0 {
			if b.Box.Top >= prevBottom-edgeEps {
				edge = math.Min(edge, b.Box.Top)
				hit = true
			}
			continue
		}
		if b.Box.Bottom > prevTop+edgeEps {
			continue
		}
		overlap := math.Min(box.Right, b.Box.Right) - math.Max(box.Left, b.Box.Left)
		if !hit || b.Box.Bottom > edge ||
			(b.Box.Bottom == edge && (overlap > bestOverlap ||
				(overlap == bestOverlap && b.Box.Left < bestLeft))) {
			edge = b.Box.Bottom
			bestOverlap = overlap
			bestLeft = b.Box.Left
			struck = i
		}
		hit = true
	}

	if !hit {
		return top, false, -1
	}
	if vy > 0 {
		return edge - height, true, -1
	}
	return edge, true, struck
}

// blockSlice adapts a block slice to Terrain.
type blockSlice []Block

func (s blockSlice) Len() int       { return len(s) }
func (s blockSlice) At(i int) Block { return s[i] }
