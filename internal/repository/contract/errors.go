package contract

import "errors"

// ErrDuplicate is returned when a write hits a unique index, e.g. a second
// account for one email or two keys with one name.
var ErrDuplicate = errors.New("duplicate record")
