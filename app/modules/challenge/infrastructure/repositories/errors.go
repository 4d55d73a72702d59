package challengedb

import "errors"

// ErrNotFound indicates the referenced challenge does not exist.
var ErrNotFound = errors.New("challenge not found")
