package layout

import "math"

// enclose returns the smallest circle enclosing all circles, using the
// randomized incremental algorithm (Welzl/Matoušek) over a shuffled copy.
func enclose(circles []*Circle, random func() float64) Circle {
	shuffled := make([]*Circle, len(circles))
	copy(shuffled, circles)
	shuffle(shuffled, random)

	var (
		basis []*Circle
		e     *Circle
	)
	// iteration bound, only reached on degenerate float input
	budget := 16*len(shuffled)*len(shuffled) + 64
	for i := 0; i < len(shuffled) && budget > 0; budget-- {
		p := shuffled[i]
		if e != nil && enclosesWeak(e, p) {
			i++
			continue
		}
		basis = extendBasis(basis, p)
		c := encloseBasis(basis)
		e = &c
		i = 0
	}
	if e == nil {
		return Circle{}
	}
	return *e
}

func shuffle(circles []*Circle, random func() float64) {
	for m := len(circles); m > 0; {
		i := int(random() * float64(m))
		m--
		circles[m], circles[i] = circles[i], circles[m]
	}
}

func extendBasis(basis []*Circle, p *Circle) []*Circle {
	if enclosesWeakAll(p, basis) {
		return []*Circle{p}
	}

	for _, b := range basis {
		if enclosesNot(p, b) {
			c := encloseBasis2(b, p)
			if enclosesWeakAll(&c, basis) {
				return []*Circle{b, p}
			}
		}
	}

	for i := 0; i < len(basis)-1; i++ {
		for j := i + 1; j < len(basis); j++ {
			bij := encloseBasis2(basis[i], basis[j])
			bip := encloseBasis2(basis[i], p)
			bjp := encloseBasis2(basis[j], p)
			if enclosesNot(&bij, p) && enclosesNot(&bip, basis[j]) && enclosesNot(&bjp, basis[i]) {
				c := encloseBasis3(basis[i], basis[j], p)
				if enclosesWeakAll(&c, basis) {
					return []*Circle{basis[i], basis[j], p}
				}
			}
		}
	}

	// numerically degenerate input; restart the basis from p
	return []*Circle{p}
}

func enclosesNot(a, b *Circle) bool {
	dr := a.R - b.R
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr < 0 || dr*dr < dx*dx+dy*dy
}

func enclosesWeak(a, b *Circle) bool {
	dr := a.R - b.R + math.Max(math.Max(a.R, b.R), 1)*1e-9
	dx, dy := b.X-a.X, b.Y-a.Y
	return dr > 0 && dr*dr > dx*dx+dy*dy
}

func enclosesWeakAll(a *Circle, basis []*Circle) bool {
	for _, b := range basis {
		if !enclosesWeak(a, b) {
			return false
		}
	}
	return true
}

func encloseBasis(basis []*Circle) Circle {
	switch len(basis) {
	case 1:
		return *basis[0]
	case 2:
		return encloseBasis2(basis[0], basis[1])
	default:
		return encloseBasis3(basis[0], basis[1], basis[2])
	}
}

func encloseBasis2(a, b *Circle) Circle {
	x21, y21, r21 := b.X-a.X, b.Y-a.Y, b.R-a.R
	l := math.Sqrt(x21*x21 + y21*y21)
	if l == 0 {
		return Circle{X: a.X, Y: a.Y, R: math.Max(a.R, b.R)}
	}
	return Circle{
		X: (a.X + b.X + x21/l*r21) / 2,
		Y: (a.Y + b.Y + y21/l*r21) / 2,
		R: (l + a.R + b.R) / 2,
	}
}

func encloseBasis3(a, b, c *Circle) Circle {
	x1, y1, r1 := a.X, a.Y, a.R
	x2, y2, r2 := b.X, b.Y, b.R
	x3, y3, r3 := c.X, c.Y, c.R

	a2, a3 := x1-x2, x1-x3
	b2, b3 := y1-y2, y1-y3
	c2, c3 := r2-r1, r3-r1
	d1 := x1*x1 + y1*y1 - r1*r1
	d2 := d1 - x2*x2 - y2*y2 + r2*r2
	d3 := d1 - x3*x3 - y3*y3 + r3*r3
	ab := a3*b2 - a2*b3
	xa := (b2*d3-b3*d2)/(ab*2) - x1
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - y1
	yb := (a2*c3 - a3*c2) / ab
	A := xb*xb + yb*yb - 1
	B := 2 * (r1 + xa*xb + ya*yb)
	C := xa*xa + ya*ya - r1*r1

	var r float64
	if math.Abs(A) > 1e-6 {
		r = -(B + math.Sqrt(B*B-4*A*C)) / (2 * A)
	} else {
		r = -(C / B)
	}
	return Circle{X: x1 + xa + xb*r, Y: y1 + ya + yb*r, R: r}
}
