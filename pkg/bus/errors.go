package bus

import "github.com/pkg/errors"

// errOutOfRange is a host-side plumbing error, not part of the trap path:
// Memory.Load is called before a CPU exists, while populating a fresh
// image, so there is no trap.Result to return it as.
var errOutOfRange = errors.New("bus: data does not fit in memory")
