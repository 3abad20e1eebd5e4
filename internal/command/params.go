package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/terrainview/internal/terrain"
)

// Params are the processing parameters entered on reset.
type Params struct {
	SkipSize int
	StepSize float32
}

// Validate checks both parameters against the ranges the terrain accepts at the prompt.
func (p Params) Validate() error {
	if err := terrain.ValidateSkipSize(p.SkipSize); err != nil {
		return err
	}
	if p.StepSize < terrain.MinStepSize || p.StepSize > terrain.MaxStepSize {
		return fmt.Errorf("%w: %g not in [%g, %g]",
			terrain.ErrStepSizeOutOfRange, p.StepSize, terrain.MinStepSize, terrain.MaxStepSize)
	}
	return nil
}

// ErrNoInput is returned when the prompt input ends before valid values were read.
var ErrNoInput = errors.New("no more input")

// Prompter asks for Params on a text stream, repeating each question until the
// answer parses and is in range.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a prompter reading answers from r and writing questions to w.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(r),
		out: w,
	}
}

// Ask prompts for a skip size and then a step size.
func (p *Prompter) Ask() (Params, error) {
	var params Params

	for {
		fmt.Fprintf(p.out, "Enter reduce skip size between %d to %d: ", terrain.MinSkipSize, terrain.MaxSkipSize)
		s, err := p.next()
		if err != nil {
			return Params{}, err
		}
		v, err := strconv.Atoi(s)
		if err == nil && terrain.ValidateSkipSize(v) == nil {
			params.SkipSize = v
			break
		}
	}

	for {
		fmt.Fprintf(p.out, "Enter CatMull step size between %g to %g: ", terrain.MinStepSize, terrain.MaxStepSize)
		s, err := p.next()
		if err != nil {
			return Params{}, err
		}
		v, err := strconv.ParseFloat(s, 32)
		if err == nil && v >= float64(terrain.MinStepSize) && v <= float64(terrain.MaxStepSize) {
			params.StepSize = float32(v)
			break
		}
	}

	return params, nil
}

func (p *Prompter) next() (string, error) {
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrNoInput
	}
	return strings.TrimSpace(p.in.Text()), nil
}
