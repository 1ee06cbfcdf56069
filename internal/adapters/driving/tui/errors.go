package tui

import "errors"

// ErrMissingSession is returned when the retrieval session is not provided.
var ErrMissingSession = errors.New("tui: retrieval session is required")

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("tui: catalog service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
