package enums

import "fmt"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

var validUserRoles = []UserRole{RoleCustomer, RoleAdmin}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	for _, v := range validUserRoles {
		if r == v {
			return true
		}
	}
	return false
}

func ParseUserRole(raw string) (UserRole, error) {
	role := UserRole(raw)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid user role %q", raw)
	}
	return role, nil
}
