package user

import (
	"fmt"
	"path"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/record"
)

const (
	SettingReportExportDir = "report_export_dir"
	DefaultReportExportDir = "reports"
)

type Admin struct {
	User

	managedUsers []Member // referenced, not owned
	issued       int      // notifications issued so far
	settings     map[string]string
}

// NewAdmin creates an Admin with the given admin roles, RoleAdmin if none.
func NewAdmin(id int, name, email, pwd string, roles ...string) (*Admin, error) {
	adminRoles := make([]string, 0, len(roles))
	for _, role := range roles {
		if isRoleOf(role, AdminRoles) {
			adminRoles = append(adminRoles, role)
		}
	}
	if len(adminRoles) == 0 {
		adminRoles = append(adminRoles, RoleAdmin)
	}

	usr, err := newUser(id, name, email, pwd, adminRoles)
	if err != nil {
		return nil, err
	}
	return &Admin{User: usr, settings: make(map[string]string)}, nil
}

func (a *Admin) Account() *User { return &a.User }
func (a *Admin) Role() string   { return RoleAdmin }
func (a *Admin) member()        {}

// AddUser starts managing m. It fails if a managed member already has the same ID.
func (a *Admin) AddUser(m Member) bool {
	if isNil(m) {
		return false
	}
	if a.indexOf(m.Account().ID) >= 0 {
		return false
	}
	a.managedUsers = append(a.managedUsers, m)
	return true
}

// RemoveUser stops managing the member with the given ID. The order of the others is preserved.
func (a *Admin) RemoveUser(id int) bool {
	idx := a.indexOf(id)
	if idx < 0 {
		return false
	}
	a.managedUsers = append(a.managedUsers[:idx], a.managedUsers[idx+1:]...)
	return true
}

func (a *Admin) indexOf(id int) int {
	for i, m := range a.managedUsers {
		if m.Account().ID == id {
			return i
		}
	}
	return -1
}

func (a *Admin) ManagedUsers() []Member {
	res := make([]Member, len(a.managedUsers))
	copy(res, a.managedUsers)
	return res
}

// EditPermissions sets the admin role of a managed Admin.
// Only managed admins can be edited, only to an admin role,
// and never to a role with a higher priority than the ones of a.
func (a *Admin) EditPermissions(id int, role string) bool {
	if !isRoleOf(role, AdminRoles) || RolePriority(role) > MaxRolePriority(a.Roles) {
		return false
	}
	idx := a.indexOf(id)
	if idx < 0 {
		return false
	}
	target, ok := a.managedUsers[idx].(*Admin)
	if !ok {
		return false
	}
	target.Roles = []string{role}
	return true
}

// ExportReport returns the file path r is exported to. Nothing is written.
func (a *Admin) ExportReport(r record.Report) string {
	dir := a.settings[SettingReportExportDir]
	if dir == "" {
		dir = DefaultReportExportDir
	}
	name := fmt.Sprintf("report_%d", r.ID)
	if slug := core.Slugify(r.Type); slug != "" {
		name += "_" + slug
	}
	return path.Join(dir, name+".txt")
}

// ConfigureSettings merges settings into the settings of a.
func (a *Admin) ConfigureSettings(settings map[string]string) bool {
	if a.settings == nil {
		a.settings = make(map[string]string, len(settings))
	}
	for k, v := range settings {
		a.settings[k] = v
	}
	return true
}

func (a *Admin) Settings() map[string]string {
	res := make(map[string]string, len(a.settings))
	for k, v := range a.settings {
		res[k] = v
	}
	return res
}

// IssueNotifications sends one notification with message to every member and returns the number of accepted sends.
// The notification is shared: every Student recipient stores a reference to the same instance.
func (a *Admin) IssueNotifications(members []Member, message string) int {
	if len(members) == 0 {
		return 0
	}

	a.issued++
	notif := &record.Notification{
		ID:       a.issued,
		Message:  message,
		IssuedAt: record.Now(),
	}

	var count int
	for _, m := range members {
		if isNil(m) || !notif.Send() {
			continue
		}
		count++
		if s, ok := m.(*Student); ok {
			s.AddNotification(notif)
		}
	}
	return count
}
