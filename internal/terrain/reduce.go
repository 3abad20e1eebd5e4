package terrain

import "fmt"

// ValidateSkipSize reports whether skip is an accepted decimation stride.
func ValidateSkipSize(skip int) error {
	if skip < MinSkipSize || skip > MaxSkipSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrSkipSizeOutOfRange, skip, MinSkipSize, MaxSkipSize)
	}
	return nil
}

// Reduce subsamples src at the given stride on both axes.
//
// Reduced vertex (col, row) is a verbatim copy of source vertex
// (col*skip, row*skip); trailing rows and columns that do not fill a whole
// stride are dropped. A skip of 1 returns a copy of src. The result must keep
// at least 2 points on each axis, so a single-row or single-column source
// fails at every skip.
func Reduce(src *Mesh, skip int) (*Mesh, error) {
	if err := ValidateSkipSize(skip); err != nil {
		return nil, err
	}

	width := src.Width / skip
	height := src.Height / skip
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: %dx%d at skip %d gives %dx%d",
			ErrSkipSizeTooLarge, src.Width, src.Height, skip, width, height)
	}
	if skip == 1 {
		return src.Clone(), nil
	}

	vertices := make([]float32, 0, width*height*3)
	for row := range height {
		for col := range width {
			i := (row*skip*src.Width + col*skip) * 3
			vertices = append(vertices, src.Vertices[i:i+3]...)
		}
	}

	return newMesh(width, height, vertices), nil
}
