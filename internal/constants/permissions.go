package constants

const (
	ViewData       = "view_data"
	SubmitProject  = "submit_project"
	ApproveProject = "approve_project"
)
