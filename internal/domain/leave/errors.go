package leave

import "errors"

var (
	ErrNotFound      = errors.New("leave request not found")
	ErrInvalidState  = errors.New("leave request already decided")
	ErrNotAuthorized = errors.New("action not authorized")
)
