package kmeans

import "errors"

// ErrInvalidInput is returned by Fit when the point set is empty or the
// requested number of clusters or rounds is not positive.
var ErrInvalidInput = errors.New("invalid input")
