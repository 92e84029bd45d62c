package registry

import "errors"

var (
	ErrNameLocationRequired = errors.New("Name and location are required")
	ErrInvalidArea          = errors.New("Area must be a positive number")
	ErrProjectNotFound      = errors.New("Project not found")
	ErrAlreadyApproved      = errors.New("Project is already approved")
)
