package pixels

import (
	"fmt"
	"image"
	"time"

	"kmquant/kmeans"
)

type config struct {
	allPixels bool
	fit       []kmeans.Option
}

type Option func(*config)

// WithAllPixels fits on every pixel instead of the distinct colours, so that
// frequent colours weigh more in the means.
func WithAllPixels(all bool) Option {
	return func(c *config) {
		c.allPixels = all
	}
}

// WithFitOptions passes options through to kmeans.Fit.
func WithFitOptions(opts ...kmeans.Option) Option {
	return func(c *config) {
		c.fit = append(c.fit, opts...)
	}
}

// Result is the outcome of Quantize.
type Result struct {
	Image   *image.NRGBA
	Model   *kmeans.Model
	Pixels  int           // pixels in the source image
	Unique  int           // distinct colours in the source image
	Elapsed time.Duration // time spent in kmeans.Fit
}

// Quantize reduces img to at most k colours. It returns the recoloured image
// along with the fitted model.
func Quantize(img image.Image, k int, opts ...Option) (*Result, error) {
	var conf config
	for _, opt := range opts {
		opt(&conf)
	}

	points := FromImage(img)
	unique := Unique(points)
	training := unique
	if conf.allPixels {
		training = points
	}

	start := time.Now()
	model, err := kmeans.Fit(training, k, conf.fit...)
	if err != nil {
		return nil, fmt.Errorf("could not cluster colours: %w", err)
	}
	elapsed := time.Since(start)

	out, err := ToImage(Apply(model, points), img.Bounds())
	if err != nil {
		return nil, err
	}
	return &Result{
		Image:   out,
		Model:   model,
		Pixels:  len(points),
		Unique:  len(unique),
		Elapsed: elapsed,
	}, nil
}

// Apply replaces every point with its nearest centroid, keeping positions.
func Apply(model *kmeans.Model, points []kmeans.Point) []kmeans.Point {
	cache := make(map[kmeans.Point]kmeans.Point)
	res := make([]kmeans.Point, len(points))
	for i, p := range points {
		c, ok := cache[p]
		if !ok {
			c = model.Predict(p)
			cache[p] = c
		}
		res[i] = c
	}
	return res
}
