package terrain

import (
	"fmt"

	"github.com/chewxy/math32"
)

// ValidateStepSize reports whether step is an accepted spline step size.
func ValidateStepSize(step float32) error {
	if !(step > 0 && step <= 1) {
		return fmt.Errorf("%w: %g not in (0, 1]", ErrStepSizeOutOfRange, step)
	}
	return nil
}

// PointsPerSegment returns how many samples a spline segment produces for step,
// not counting the endpoint it shares with the next segment.
func PointsPerSegment(step float32) int {
	return int(math32.Ceil(1 / step))
}

// SmoothedLength returns the number of points a line of n points has after smoothing.
func SmoothedLength(n int, step float32) int {
	if n < 2 {
		return n
	}
	return PointsPerSegment(step)*(n-1) + 1
}

// SmoothAxis densifies m along one axis with a Catmull-Rom spline.
//
// Every row (AxisX) or column (AxisZ) is treated as an independent line of
// control points. The first and last segment of a line are interpolated
// linearly; interior segments use the uniform Catmull-Rom cubic through their
// four neighbouring points. Both line endpoints are kept exactly. The point
// count on the other axis is unchanged.
func SmoothAxis(m *Mesh, axis Axis, step float32) (*Mesh, error) {
	if err := ValidateStepSize(step); err != nil {
		return nil, err
	}

	width, height := m.Width, m.Height
	lines, lineLen := height, width
	if axis == AxisZ {
		lines, lineLen = width, height
	}

	outLen := SmoothedLength(lineLen, step)
	if axis == AxisX {
		width = outLen
	} else {
		height = outLen
	}
	if width*height > MaxVertices {
		return nil, fmt.Errorf("%w: smoothing %s gives %dx%d", ErrMeshTooLarge, axis, width, height)
	}

	vertices := make([]float32, width*height*3)
	line := make([][3]float32, lineLen)
	out := make([][3]float32, 0, outLen)

	for l := range lines {
		for i := range lineLen {
			if axis == AxisX {
				line[i] = m.Vertex(i, l)
			} else {
				line[i] = m.Vertex(l, i)
			}
		}

		out = smoothLine(out[:0], line, step)

		for i, p := range out {
			var dst int
			if axis == AxisX {
				dst = (l*width + i) * 3
			} else {
				dst = (i*width + l) * 3
			}
			copy(vertices[dst:dst+3], p[:])
		}
	}

	return newMesh(width, height, vertices), nil
}

// smoothLine appends the smoothed samples of pts to dst.
func smoothLine(dst [][3]float32, pts [][3]float32, step float32) [][3]float32 {
	n := len(pts)
	if n < 2 {
		return append(dst, pts...)
	}

	perSegment := PointsPerSegment(step)
	for i := 0; i < n-1; i++ {
		linear := i == 0 || i == n-2
		for k := range perSegment {
			u := float32(k) * step
			if linear {
				dst = append(dst, lerp(pts[i], pts[i+1], u))
			} else {
				dst = append(dst, catmullRom(pts[i-1], pts[i], pts[i+1], pts[i+2], u))
			}
		}
	}
	return append(dst, pts[n-1])
}

func lerp(p0, p1 [3]float32, u float32) [3]float32 {
	var r [3]float32
	for k := range 3 {
		r[k] = p0[k] + u*(p1[k]-p0[k])
	}
	return r
}

// catmullRom evaluates the uniform Catmull-Rom segment between p1 and p2.
func catmullRom(p0, p1, p2, p3 [3]float32, u float32) [3]float32 {
	u2 := u * u
	u3 := u2 * u
	var r [3]float32
	for k := range 3 {
		r[k] = 0.5 * (2*p1[k] +
			(-p0[k]+p2[k])*u +
			(2*p0[k]-5*p1[k]+4*p2[k]-p3[k])*u2 +
			(-p0[k]+3*p1[k]-3*p2[k]+p3[k])*u3)
	}
	return r
}
