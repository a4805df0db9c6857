package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Defaults used when the user leaves a value unset
const (
	DefaultWidth           = 400
	DefaultAspectRatio     = 16.0 / 9.0
	DefaultSamplesPerPixel = 200
	DefaultMaxDepth        = 50
)

var (
	// ErrInvalidAspectRatio is returned for aspect ratios not of the form X:Y with X, Y > 0
	ErrInvalidAspectRatio = errors.New("invalid aspect ratio, must be X:Y with X and Y positive numbers")
	// ErrInvalidDimensions is returned when the resolved image would be empty
	ErrInvalidDimensions = errors.New("invalid image dimensions")
)

// ParseAspectRatio parses "X:Y" into X/Y
func ParseAspectRatio(s string) (float64, error) {
	w, h, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}

	x, errX := strconv.ParseFloat(strings.TrimSpace(w), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if errX != nil || errY != nil || !(x > 0) || !(y > 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAspectRatio, s)
	}

	return x / y, nil
}

// Resolution is a resolved output size
type Resolution struct {
	Width       int
	Height      int
	AspectRatio float64 // Width / Height as used by the camera
}

// Resolve fills in whichever of width, height and aspect ratio the user left
// unset (values ≤ 0). When both dimensions are given they win over the aspect ratio.
func Resolve(width, height int, aspectRatio float64) (Resolution, error) {
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}

	var r Resolution
	switch {
	case width > 0 && height > 0:
		r = Resolution{Width: width, Height: height, AspectRatio: float64(width) / float64(height)}
	case width > 0:
		r = Resolution{Width: width, Height: int(float64(width) / aspectRatio), AspectRatio: aspectRatio}
	case height > 0:
		r = Resolution{Width: int(float64(height) * aspectRatio), Height: height, AspectRatio: aspectRatio}
	default:
		r = Resolution{Width: DefaultWidth, Height: int(DefaultWidth / aspectRatio), AspectRatio: aspectRatio}
	}

	if r.Width < 1 || r.Height < 1 {
		return Resolution{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r.Width, r.Height)
	}
	return r, nil
}

// Options holds the user-facing render settings
type Options struct {
	Width           int
	Height          int
	AspectRatio     string // "X:Y", empty for default
	SamplesPerPixel int
	MaxDepth        int
	NumWorkers      int
	ChunkSize       int
}

// DefaultOptions returns the options used when no flags are given
func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: DefaultSamplesPerPixel,
		MaxDepth:        DefaultMaxDepth,
	}
}

// Validate checks the non-dimension settings
func (o Options) Validate() error {
	var errs []error
	if o.SamplesPerPixel < 1 {
		errs = append(errs, fmt.Errorf("samples must be at least 1, got %d", o.SamplesPerPixel))
	}
	if o.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("depth must be at least 1, got %d", o.MaxDepth))
	}
	if o.NumWorkers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", o.NumWorkers))
	}
	if o.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk size must not be negative, got %d", o.ChunkSize))
	}
	return errors.Join(errs...)
}

// Resolution validates the options and resolves the output size
func (o Options) Resolution() (Resolution, error) {
	if err := o.Validate(); err != nil {
		return Resolution{}, err
	}

	aspect := 0.0
	if strings.TrimSpace(o.AspectRatio) != "" {
		var err error
		if aspect, err = ParseAspectRatio(o.AspectRatio); err != nil {
			return Resolution{}, err
		}
	}

	return Resolve(o.Width, o.Height, aspect)
}
