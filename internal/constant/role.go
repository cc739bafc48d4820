package constant

type ProjectRole int

const (
	ProjectRoleNone ProjectRole = iota
	ProjectRoleOwner
)
