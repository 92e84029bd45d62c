package constants

// Roles in ascending order of privilege.
const (
	Submitter = "submitter"
	Reviewer  = "reviewer"
	Admin     = "admin"
)
