package user

// Role is the fixed role enumeration of the institution. Indonesian labels
// are kept because they are the institution's own vocabulary: Dosen is a
// lecturer, Sekjur a department secretary, Kajur a department head, Wadir a
// vice-director.
type Role string

const (
	RoleDosen    Role = "Dosen"
	RoleSekjur   Role = "Sekjur"
	RoleKajur    Role = "Kajur"
	RoleWadir1   Role = "Wadir1"
	RoleWadir2   Role = "Wadir2"
	RoleWadir3   Role = "Wadir3"
	RoleDirektur Role = "Direktur"
	RoleAdmin    Role = "Admin"

	// Staff-only support units
	RoleP3M  Role = "P3M"
	RoleUP3M Role = "UP3M"
	RoleTIK  Role = "TIK"
	RolePP   Role = "PP"
)

// approverRoles are the roles that can sit on the approval chain and review
// clarifications or browse subordinate records.
var approverRoles = map[Role]bool{
	RoleSekjur:   true,
	RoleKajur:    true,
	RoleWadir1:   true,
	RoleWadir2:   true,
	RoleWadir3:   true,
	RoleDirektur: true,
	RoleAdmin:    true,
}

// superiorRoles are the roles a user may report to.
var superiorRoles = map[Role]bool{
	RoleKajur:    true,
	RoleWadir1:   true,
	RoleWadir2:   true,
	RoleWadir3:   true,
	RoleDirektur: true,
}

// IsApprover reports whether the role reviews clarifications.
func (r Role) IsApprover() bool {
	return approverRoles[r]
}

// CanBeSuperior reports whether the role may be assigned as someone's
// immediate superior.
func (r Role) CanBeSuperior() bool {
	return superiorRoles[r]
}

// IsValid reports whether the role is part of the enumeration.
func (r Role) IsValid() bool {
	switch r {
	case RoleDosen, RoleSekjur, RoleKajur, RoleWadir1, RoleWadir2, RoleWadir3,
		RoleDirektur, RoleAdmin, RoleP3M, RoleUP3M, RoleTIK, RolePP:
		return true
	}
	return false
}
