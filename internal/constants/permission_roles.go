package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Approval is gated here, outside the issuance core: the core enforces the
// state machine, this map enforces who may drive it.
var PermissionRoles = map[string][]string{
	ViewData:       {Submitter, Reviewer, Admin},
	SubmitProject:  {Submitter, Admin},
	ApproveProject: {Reviewer, Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
