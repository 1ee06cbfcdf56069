package products

import "errors"

// ErrNoCatalog indicates that no catalog service was provided.
var ErrNoCatalog = errors.New("catalog service is required")
