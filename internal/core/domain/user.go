package domain

// Department is the organisational unit a user belongs to.
type Department string

const (
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "Finance"
	DepartmentMarketing  Department = "Marketing"
	DepartmentIT         Department = "IT"
	DepartmentOperations Department = "Operations"
)

// Departments lists every accepted department in display order.
var Departments = []Department{
	DepartmentHR,
	DepartmentFinance,
	DepartmentMarketing,
	DepartmentIT,
	DepartmentOperations,
}

// Role is the position a user holds inside a department.
type Role string

const (
	RoleEmployee       Role = "Employee"
	RoleManager        Role = "Manager"
	RoleDepartmentHead Role = "Department Head"
)

// Roles lists every accepted role in display order.
var Roles = []Role{RoleEmployee, RoleManager, RoleDepartmentHead}

func (d Department) Valid() bool {
	for _, v := range Departments {
		if v == d {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// User is the only persisted aggregate. ID is assigned by the store on
// creation and never changes afterwards.
type User struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"   validate:"required"`
	Email      string     `json:"email"      validate:"required"`
	Photo      string     `json:"photo,omitempty"`
	Department Department `json:"department" validate:"required,department"`
	Role       Role       `json:"role"       validate:"required,role"`
}

// UserPatch holds the fields of a partial update. Nil means "keep".
type UserPatch struct {
	Username   *string
	Email      *string
	Photo      *string
	Department *string
	Role       *string
}

// Apply returns a copy of u with every non-nil patch field overwritten.
func (p UserPatch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Photo != nil {
		u.Photo = *p.Photo
	}
	if p.Department != nil {
		u.Department = Department(*p.Department)
	}
	if p.Role != nil {
		u.Role = Role(*p.Role)
	}
	return u
}
