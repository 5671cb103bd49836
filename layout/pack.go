// Package layout positions word circles for the renderers.
//
// Pack follows the front-chain sibling packing used by d3-hierarchy: circles are
// placed tangent to two circles on the chain, intersections are resolved by moving
// along the chain, and the smallest enclosing circle is computed at the end.
package layout

import "math"

// Circle is one packed leaf. X and Y are the centre within the pack area.
type Circle struct {
	X float64
	Y float64
	R float64
}

type chainNode struct {
	c    *Circle
	next *chainNode
	prev *chainNode
}

// Pack lays out one circle per value inside a width x height area, with
// padding between siblings. Radii start as sqrt(value). The result has the same
// order as values. Non-positive values get a zero radius.
func Pack(values []float64, width, height, padding float64) []Circle {
	if len(values) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	circles := make([]Circle, len(values))
	ptrs := make([]*Circle, len(values))
	for i, v := range values {
		if v > 0 {
			circles[i].R = math.Sqrt(v)
		}
		ptrs[i] = &circles[i]
	}

	random := newLCG()
	side := math.Min(width, height)

	// first pass without padding to learn the unscaled root radius
	root := packSiblings(ptrs, random)
	if root <= 0 {
		return circles
	}

	// second pass with padding expressed in unscaled units
	pad := padding * root / side
	if pad > 0 {
		for _, c := range ptrs {
			c.R += pad
		}
	}
	e := packSiblings(ptrs, random)
	if pad > 0 {
		for _, c := range ptrs {
			c.R -= pad
		}
	}
	root = e + pad

	k := side / (2 * root)
	cx, cy := width/2, height/2
	for _, c := range ptrs {
		c.X = cx + k*c.X
		c.Y = cy + k*c.Y
		c.R *= k
	}
	return circles
}

// packSiblings packs the circles around the origin and returns the radius of
// the enclosing circle.
func packSiblings(circles []*Circle, random func() float64) float64 {
	n := len(circles)
	if n == 0 {
		return 0
	}

	a := circles[0]
	a.X, a.Y = 0, 0
	if n == 1 {
		return a.R
	}

	b := circles[1]
	a.X, b.X, b.Y = -b.R, a.R, 0
	if n == 2 {
		return a.R + b.R
	}

	place(b, a, circles[2])

	na := &chainNode{c: a}
	nb := &chainNode{c: b}
	nc := &chainNode{c: circles[2]}
	na.next, nc.prev = nb, nb
	nb.next, na.prev = nc, nc
	nc.next, nb.prev = na, na

pack:
	for i := 3; i < n; i++ {
		c := circles[i]
		place(na.c, nb.c, c)
		node := &chainNode{c: c}

		// find the closest intersecting circle on the front chain, if any
		j, k := nb.next, na.prev
		sj, sk := nb.c.R, na.c.R
		for {
			if sj <= sk {
				if intersects(j.c, node.c) {
					nb = j
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sj += j.c.R
				j = j.next
			} else {
				if intersects(k.c, node.c) {
					na = k
					na.next, nb.prev = nb, na
					i--
					continue pack
				}
				sk += k.c.R
				k = k.prev
			}
			if j == k.next {
				break
			}
		}

		// insert between a and b
		node.prev, node.next = na, nb
		na.next, nb.prev = node, node
		nb = node

		// new closest pair to the centroid
		best := score(na)
		for cur := node.next; cur != nb; cur = cur.next {
			if s := score(cur); s < best {
				na, best = cur, s
			}
		}
		nb = na.next
	}

	chain := []*Circle{nb.c}
	for cur := nb.next; cur != nb; cur = cur.next {
		chain = append(chain, cur.c)
	}
	enc := enclose(chain, random)

	for _, c := range circles {
		c.X -= enc.X
		c.Y -= enc.Y
	}
	return enc.R
}

// place positions c tangent to both a and b.
func place(b, a, c *Circle) {
	dx, dy := b.X-a.X, b.Y-a.Y
	d2 := dx*dx + dy*dy
	if d2 == 0 {
		c.X = a.X + c.R
		c.Y = a.Y
		return
	}
	a2 := (a.R + c.R) * (a.R + c.R)
	b2 := (b.R + c.R) * (b.R + c.R)
	if a2 > b2 {
		x := (d2 + b2 - a2) / (2 * d2)
		y := math.Sqrt(math.Max(0, b2/d2-x*x))
		c.X = b.X - x*dx - y*dy
		c.Y = b.Y - x*dy + y*dx
	} else {
		x := (d2 + a2 - b2) / (2 * d2)
		y := math.Sqrt(math.Max(0, a2/d2-x*x))
		c.X = a.X + x*dx - y*dy
		c.Y = a.Y + x*dy + y*dx
	}
}

func intersects(a, b *Circle) bool {
	dr := a.R + b.R - 1e-6
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func score(n *chainNode) float64 {
	a, b := n.c, n.next.c
	ab := a.R + b.R
	if ab == 0 {
		return a.X*a.X + a.Y*a.Y
	}
	dx := (a.X*b.R + b.X*a.R) / ab
	dy := (a.Y*b.R + b.Y*a.R) / ab
	return dx*dx + dy*dy
}

// newLCG returns the linear congruential generator d3 uses so that the
// enclosing-circle shuffle, and therefore the layout, is reproducible.
func newLCG() func() float64 {
	const (
		mul = 1664525
		inc = 1013904223
		mod = 4294967296
	)
	var s uint64 = 1
	return func() float64 {
		s = (mul*s + inc) % mod
		return float64(s) / mod
	}
}
