package circle

import "errors"

var (
	ErrCircleNotFound       = errors.New("circle not found")
	ErrCodeNotFound         = errors.New("circle code not found")
	ErrAlreadyInCircle      = errors.New("already in a circle")
	ErrMemberNotFound       = errors.New("member not found")
	ErrNotOwner             = errors.New("not circle owner")
	ErrCannotRemoveOwner    = errors.New("cannot remove circle owner")
	ErrCodeGenerationFailed = errors.New("circle code generation failed")
)
