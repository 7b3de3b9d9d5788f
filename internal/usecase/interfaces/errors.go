package interfaces

import "errors"

// ErrConditionFailed is returned by repositories when a conditional write is
// rejected because the item already exists.
var ErrConditionFailed = errors.New("conditional write rejected")
