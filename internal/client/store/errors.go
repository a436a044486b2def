package store

import "errors"

var ErrStoreUnavailable = errors.New("local store unavailable")
