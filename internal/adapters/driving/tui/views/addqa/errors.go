package addqa

import "errors"

// ErrNoIngestService indicates that no ingest service was provided.
var ErrNoIngestService = errors.New("ingest service is required")
