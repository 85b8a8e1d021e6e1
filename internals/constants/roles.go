package constants

import "fmt"

// Role names match the `role` column on users and the JWT `role` claim.
const (
	RoleTeacher   = "TEACHER"
	RoleSecretary = "SECRETARY"
	RolePrincipal = "PRINCIPAL"
	RoleAdmin     = "ADMIN"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "Seuls les enseignants peuvent accéder à %s."
	ErrOnlyStaffCanAccess    = "Seul le personnel administratif peut accéder à %s."
	ErrOnlyAdminsCanAccess   = "Seul un administrateur peut accéder à %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleTeacher,
		RoleSecretary,
		RolePrincipal,
		RoleAdmin,
	}

	// Staff = everyone who reviews/validates claims, i.e. not teachers.
	StaffRoles = []string{
		RoleSecretary,
		RolePrincipal,
		RoleAdmin,
	}

	PrincipalAndAbove = []string{
		RolePrincipal,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
