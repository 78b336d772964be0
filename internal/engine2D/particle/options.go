package particle

import (
	"fmt"
	"image/color"

	"linux-wallpaperparticles/internal/engine2D"
)

var black = color.NRGBA{A: 255}

type DustOptions struct {
	ViewWidth  int
	ViewHeight int
	Count      int
	Color      color.NRGBA
	Speed      float64
	MinRadius  float64
	MaxRadius  float64
	Gradient   *engine2D.RadialGradient
	Visible    bool
	Rand       *Random
}

func DefaultDustOptions() DustOptions {
	return DustOptions{
		Count:     100,
		Color:     black,
		Speed:     5,
		MinRadius: 1,
		MaxRadius: 10,
		Visible:   true,
	}
}

func (o DustOptions) Validate() error {
	if err := validateView(o.ViewWidth, o.ViewHeight, o.Count); err != nil {
		return err
	}
	return validateRadii(o.MinRadius, o.MaxRadius)
}

type LineOptions struct {
	ViewWidth   int
	ViewHeight  int
	Count       int
	Color       color.NRGBA
	Speed       float64
	MinDistance float64
	MaxDistance float64
	Radius      float64
	LineColor   color.NRGBA
	LineWidth   float64
	Visible     bool
	Rand        *Random
}

func DefaultLineOptions() LineOptions {
	return LineOptions{
		Count:       200,
		Color:       black,
		Speed:       5,
		MinDistance: 40,
		MaxDistance: 160,
		Radius:      2.5,
		LineColor:   black,
		LineWidth:   1,
		Visible:     true,
	}
}

func (o LineOptions) Validate() error {
	if err := validateView(o.ViewWidth, o.ViewHeight, o.Count); err != nil {
		return err
	}
	if err := validateDistances(o.MinDistance, o.MaxDistance); err != nil {
		return err
	}
	if o.Radius < 0 {
		return fmt.Errorf("%w: particle radius %.2f is negative", ErrInvalidOptions, o.Radius)
	}
	if o.LineWidth < 0 {
		return fmt.Errorf("%w: line width %.2f is negative", ErrInvalidOptions, o.LineWidth)
	}
	return nil
}

func validateView(width, height, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: particle count %d is negative", ErrInvalidOptions, count)
	}
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: viewport %dx%d has a negative side", ErrInvalidOptions, width, height)
	}
	return nil
}

func validateRadii(minRadius, maxRadius float64) error {
	if maxRadius <= 0 {
		return fmt.Errorf("%w: max radius %.2f must be positive", ErrInvalidOptions, maxRadius)
	}
	if minRadius < 0 {
		return fmt.Errorf("%w: min radius %.2f is negative", ErrInvalidOptions, minRadius)
	}
	if minRadius > maxRadius {
		return fmt.Errorf("%w: min radius %.2f > max radius %.2f", ErrInvalidOptions, minRadius, maxRadius)
	}
	return nil
}

// validateDistances rejects ranges that would divide by zero or a negative
// width when interpolating link alpha.
func validateDistances(minDistance, maxDistance float64) error {
	if minDistance < 0 {
		return fmt.Errorf("%w: min distance %.2f is negative", ErrInvalidOptions, minDistance)
	}
	if minDistance > maxDistance {
		return fmt.Errorf("%w: min distance %.2f > max distance %.2f", ErrInvalidOptions, minDistance, maxDistance)
	}
	if minDistance == maxDistance {
		return fmt.Errorf("%w: min and max distance are both %.2f", ErrInvalidOptions, maxDistance)
	}
	return nil
}
