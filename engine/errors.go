package engine

import "errors"

// ErrInvalidMonth reports an unparseable forecast month supplied by the
// caller. It is the only pipeline error surfaced to users; everything else
// degrades to a safe default.
var ErrInvalidMonth = errors.New("invalid month format, expected YYYY-MM or YYYY-MM-DD")

// ErrMiningFailure marks an internal mining failure that was recovered to an
// empty combo list.
var ErrMiningFailure = errors.New("combo mining failed")

// ErrInference marks a model prediction failure, recovered by falling back
// to the historical mean.
var ErrInference = errors.New("model inference failed")
