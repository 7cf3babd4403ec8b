package user

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/record"
)

// Roles
const (
	// Admin
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"

	// Teacher
	RoleTeacher = "teacher:"

	// Student
	RoleStudent = "student:"
)

var (
	AdminRoles   = []string{RoleAdmin, RoleAdminOwner, RoleAdminPrincipal}
	TeacherRoles = []string{RoleTeacher}
	StudentRoles = []string{RoleStudent}
	AllRoles     = getAllRoles()

	rolePriorities = map[string]int{
		// Admins: 30 - 21
		RoleAdminOwner:     30,
		RoleAdminPrincipal: 29,
		RoleAdmin:          21,

		// Teachers: 20 - 11
		RoleTeacher: 11,

		// Students: 10 - 1
		RoleStudent: 1,
	}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Admin Principal", Value: RoleAdminPrincipal},
		{Name: "Admin Owner", Value: RoleAdminOwner},
	}

	passwordHashCost = bcrypt.DefaultCost // mockable
)

func getAllRoles() []string {
	all := make([]string, 0, 5)
	all = append(all, AdminRoles...)
	all = append(all, TeacherRoles...)
	all = append(all, StudentRoles...)
	return all
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

func MaxRolePriority(roles []string) int {
	var max int
	for _, role := range roles {
		if RolePriority(role) > max {
			max = RolePriority(role)
		}
	}
	return max
}

// RoleName returns the display name of role, or "" if role is unknown.
func RoleName(role string) string {
	for _, r := range Roles {
		if r.Value == role {
			return r.Name
		}
	}
	return ""
}

func isRoleOf(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// User is the identity and credential shared by every school member.
// It is embedded by Student, Teacher and Admin.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Roles        []string  `json:"roles"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func newUser(id int, name, email, pwd string, roles []string) (User, error) {
	usr := User{
		ID:        id,
		Name:      name,
		Email:     email,
		Roles:     roles,
		CreatedAt: record.Now(),
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return usr, nil
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordHashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Login checks email and password against the stored credential.
// Both must match exactly; on success LastLogin is updated.
func (u *User) Login(email, pwd string) bool {
	if email == "" || email != u.Email {
		return false
	}
	if err := u.CheckPassword(pwd); err != nil {
		return false
	}
	u.LastLogin = record.Now()
	return true
}

// RecoverPassword reports whether email belongs to u.
func (u *User) RecoverPassword(email string) bool {
	return email != "" && email == u.Email
}

// ViewDashboard returns the heading of the dashboard of u.
func (u *User) ViewDashboard() string {
	name := "user"
	if len(u.Roles) > 0 {
		name = strings.ToLower(RoleName(u.mainRole()))
	}
	return fmt.Sprintf("Displaying dashboard for %s: %s", name, u.Name)
}

// mainRole returns the role of u with the highest priority.
func (u *User) mainRole() string {
	var main string
	for _, role := range u.Roles {
		if main == "" || RolePriority(role) > RolePriority(main) {
			main = role
		}
	}
	return main
}

func (u *User) RoleStartsWith(prefix string) bool {
	for _, role := range u.Roles {
		if strings.HasPrefix(role, prefix) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.RoleStartsWith(RoleAdmin)
}

func (u *User) IsTeacher() bool {
	return u.RoleStartsWith(RoleTeacher)
}

func (u *User) IsStudent() bool {
	return u.RoleStartsWith(RoleStudent)
}

// Member is one of *Student, *Teacher or *Admin.
type Member interface {
	// Account returns the embedded User.
	Account() *User
	// Role returns the base role of the member: RoleStudent, RoleTeacher or RoleAdmin.
	Role() string

	member()
}

var (
	_ Member = (*Student)(nil)
	_ Member = (*Teacher)(nil)
	_ Member = (*Admin)(nil)
)

// isNil reports whether m is nil or holds a nil variant.
func isNil(m Member) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Student:
		return v == nil
	case *Teacher:
		return v == nil
	case *Admin:
		return v == nil
	default:
		return false
	}
}

// NewMember contains information needed to register a new Member.
type NewMember struct {
	ID              int    `json:"id" validate:"required,gt=0"`
	Name            string `json:"name" validate:"required,alphanum_"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required,allroles"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (nm *NewMember) Validate(svc *Service) error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Role = core.CleanString(nm.Role, true /* lower */)

	if err := core.Validate.Struct(nm); err != nil {
		return err
	}
	return svc.checkUniqueness(nm.ID, nm.Email)
}

// Build creates the Member variant matching nm.Role.
func (nm NewMember) Build() (Member, error) {
	switch {
	case isRoleOf(nm.Role, AdminRoles):
		return NewAdmin(nm.ID, nm.Name, nm.Email, nm.Password, nm.Role)
	case isRoleOf(nm.Role, TeacherRoles):
		return NewTeacher(nm.ID, nm.Name, nm.Email, nm.Password)
	case isRoleOf(nm.Role, StudentRoles):
		return NewStudent(nm.ID, nm.Name, nm.Email, nm.Password)
	default:
		return nil, ErrInvalidRole
	}
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }

type QueryFilter struct {
	Search      string    `query:"search"`
	Roles       []string  `query:"role"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Roles == nil && qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
