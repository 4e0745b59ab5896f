package domain

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func validUser() User {
	return User{
		Username:   "a",
		Email:      "a@x.com",
		Department: DepartmentIT,
		Role:       RoleEmployee,
	}
}

func TestValidateUser_Valid(t *testing.T) {
	u := validUser()
	if err := NewUserValidator(false).Validate(&u); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateUser_MissingFields(t *testing.T) {
	u := User{Username: "a"}
	err := NewUserValidator(false).Validate(&u)

	de, ok := AsError(err)
	if !ok || de.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	want := []string{"email", "department", "role"}
	if len(de.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %+v", len(want), de.Violations)
	}
	for i, f := range want {
		if de.Violations[i].Field != f {
			t.Errorf("violation[%d]: expected field %q, got %q", i, f, de.Violations[i].Field)
		}
		if de.Violations[i].Kind != ViolationRequired {
			t.Errorf("violation[%d]: expected required, got %s", i, de.Violations[i].Kind)
		}
	}
}

func TestValidateUser_InvalidEnums(t *testing.T) {
	u := validUser()
	u.Department = "Legal"
	u.Role = "Intern"

	de, _ := AsError(NewUserValidator(false).Validate(&u))
	if de == nil || len(de.Violations) != 2 {
		t.Fatalf("expected two violations, got %+v", de)
	}

	dept := de.Violations[0]
	if dept.Field != "department" || dept.Kind != ViolationEnum || dept.Value != "Legal" {
		t.Fatalf("unexpected department violation: %+v", dept)
	}
	if len(dept.Allowed) != len(Departments) {
		t.Fatalf("expected allowed departments, got %v", dept.Allowed)
	}

	role := de.Violations[1]
	if role.Field != "role" || role.Kind != ViolationEnum || role.Value != "Intern" {
		t.Fatalf("unexpected role violation: %+v", role)
	}
	if role.Allowed[2] != "Department Head" {
		t.Fatalf("expected Department Head in allowed roles, got %v", role.Allowed)
	}
}

func TestValidateUser_DepartmentHeadAccepted(t *testing.T) {
	u := validUser()
	u.Role = RoleDepartmentHead
	if err := NewUserValidator(false).Validate(&u); err != nil {
		t.Fatalf("expected Department Head to be valid, got %v", err)
	}
}

func TestValidateUser_RequirePhoto(t *testing.T) {
	u := validUser()
	u.Department = ""

	de, _ := AsError(NewUserValidator(true).Validate(&u))
	if de == nil || len(de.Violations) != 2 {
		t.Fatalf("expected two violations, got %+v", de)
	}
	if de.Violations[0].Field != "photo" || de.Violations[1].Field != "department" {
		t.Fatalf("expected photo before department, got %+v", de.Violations)
	}

	u = validUser()
	u.Photo = "/file/1_me.png"
	if err := NewUserValidator(true).Validate(&u); err != nil {
		t.Fatalf("expected no error with photo set, got %v", err)
	}
}

func TestUserPatch_Apply(t *testing.T) {
	email := "b@x.com"
	role := "Manager"
	u := validUser()
	u.ID = "abc"

	got := UserPatch{Email: &email, Role: &role}.Apply(u)

	if got.ID != "abc" || got.Username != "a" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if got.Email != email || got.Role != RoleManager {
		t.Fatalf("patch not applied: %+v", got)
	}
}

func TestMustRegister_PanicsOnBadTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for an empty tag")
		}
	}()
	mustRegister(validator.New(), "", func(validator.FieldLevel) bool { return true })
}
