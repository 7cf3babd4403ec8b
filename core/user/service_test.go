package user_test

import (
	"regexp"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

const pwd = "Kx7#mQ2v!p"

type testEnv struct {
	svc      *user.Service
	repo     user.Repository
	mailSvc  *emailsvc.ConsoleServiceMock
	logger   *testutil.Logger
	recorder *testutil.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := dummydb.Open()
	require.NoError(t, err)

	env := &testEnv{
		repo:     dummydb.NewMemberRepository(db),
		logger:   &testutil.Logger{},
		recorder: testutil.NewRecorder(),
	}
	conf := testutil.NewConfig()
	env.mailSvc = emailsvc.NewConsoleServiceMock(conf, env.logger)
	env.svc = user.NewService(env.repo, env.mailSvc, conf, env.logger, env.recorder)
	return env
}

func (env *testEnv) register(t *testing.T, id int, name, email, role string) user.Member {
	m, err := env.svc.Register(user.NewMember{
		ID:              id,
		Name:            name,
		Email:           email,
		Role:            role,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	require.NoError(t, err)
	return m
}

func TestService_Register(t *testing.T) {
	env := newTestEnv(t)

	m := env.register(t, 3, " Asif Khan ", " AsifKhan@Uni.edu", user.RoleStudent)
	require.IsType(t, &user.Student{}, m)
	assert.Equal(t, "Asif Khan", m.Account().Name)
	assert.Equal(t, "asifkhan@uni.edu", m.Account().Email)
	assert.NoError(t, m.Account().CheckPassword(pwd))

	stored, err := env.svc.GetByID(3)
	require.NoError(t, err)
	assert.Same(t, m, stored)

	admin := env.register(t, 1, "Root", "root@uni.edu", user.RoleAdminOwner)
	require.IsType(t, &user.Admin{}, admin)
	assert.Equal(t, []string{user.RoleAdminOwner}, admin.Account().Roles)

	assert.Equal(t, 1, env.recorder.Registered[user.RoleStudent])
	assert.Equal(t, 1, env.recorder.Registered[user.RoleAdmin])
	assert.Len(t, env.logger.Entries("info"), 2)
}

func TestService_Register_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, 3, "Asif Khan", "asifkhan@uni.edu", user.RoleStudent)

	tests := []struct {
		name      string
		nm        user.NewMember
		wantField string
	}{
		{
			name:      "duplicate id",
			nm:        user.NewMember{ID: 3, Name: "Other", Email: "other@uni.edu", Role: user.RoleStudent, Password: pwd, PasswordConfirm: pwd},
			wantField: "id",
		},
		{
			name:      "duplicate email",
			nm:        user.NewMember{ID: 4, Name: "Other", Email: "ASIFKHAN@uni.edu", Role: user.RoleTeacher, Password: pwd, PasswordConfirm: pwd},
			wantField: "email",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(tt.nm)
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
			vErr := err.(*core.ValidationError)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
		})
	}

	_, err := env.svc.Register(user.NewMember{ID: 5, Name: "Weak", Email: "weak@uni.edu", Role: user.RoleStudent, Password: "weak", PasswordConfirm: "weak"})
	assert.IsType(t, validator.ValidationErrors{}, err)

	members, err := env.svc.QueryAll("")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestService_Login(t *testing.T) {
	env := newTestEnv(t)
	m := env.register(t, 3, "Asif Khan", "asifkhan@uni.edu", user.RoleStudent)

	tests := []struct {
		name  string
		email string
		pwd   string
		want  bool
	}{
		{name: "unknown email", email: "lol@uni.edu", pwd: pwd},
		{name: "wrong password", email: "asifkhan@uni.edu", pwd: "Kx7#mQ2v!P"},
		{name: "empty password", email: "asifkhan@uni.edu"},
		{name: "valid", email: "asifkhan@uni.edu", pwd: pwd, want: true},
		{name: "valid, email is cleaned", email: "  AsifKhan@uni.edu ", pwd: pwd, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, env.svc.Login(tt.email, tt.pwd))
		})
	}

	assert.Equal(t, 2, env.recorder.Logins[true])
	assert.Equal(t, 3, env.recorder.Logins[false])
	assert.False(t, m.Account().LastLogin.IsZero())
	assert.Len(t, env.logger.Entries("warn"), 2)
}

var resetURLRegex = regexp.MustCompile(`/password-reset/([^/\s]+)/([^/\s]+)`)

func TestService_RecoverAndResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, 3, "Asif Khan", "asifkhan@uni.edu", user.RoleStudent)

	assert.False(t, env.svc.RecoverPassword("lol@uni.edu"))
	assert.Empty(t, env.mailSvc.SentMessages())

	assert.True(t, env.svc.RecoverPassword("AsifKhan@uni.edu"))
	sent := env.mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "asifkhan@uni.edu", sent[0].To[0].Address)
	assert.Equal(t, "Password Reset", sent[0].Subject)
	assert.Equal(t, 1, env.recorder.Recoveries[true])
	assert.Equal(t, 1, env.recorder.Recoveries[false])

	match := resetURLRegex.FindStringSubmatch(sent[0].TextContent)
	require.Len(t, match, 3)
	uid, token := match[1], match[2]
	newPwd := "Zq9$wL4t#r"

	tests := []struct {
		name string
		rp   user.ResetUserPassword
	}{
		{name: "invalid uid", rp: user.ResetUserPassword{UID: "!!!", Token: token, Password: newPwd, PasswordConfirm: newPwd}},
		{name: "unknown uid", rp: user.ResetUserPassword{UID: user.EncodeUID(user.User{ID: 42}), Token: token, Password: newPwd, PasswordConfirm: newPwd}},
		{name: "invalid token", rp: user.ResetUserPassword{UID: uid, Token: "lol-lol", Password: newPwd, PasswordConfirm: newPwd}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.svc.ResetPassword(tt.rp)
			assert.True(t, core.IsValidationError(err), "got %v", err)
		})
	}

	require.NoError(t, env.svc.ResetPassword(user.ResetUserPassword{UID: uid, Token: token, Password: newPwd, PasswordConfirm: newPwd}))
	assert.False(t, env.svc.Login("asifkhan@uni.edu", pwd))
	assert.True(t, env.svc.Login("asifkhan@uni.edu", newPwd))

	// the token is single use: the password hash changed
	err := env.svc.ResetPassword(user.ResetUserPassword{UID: uid, Token: token, Password: pwd, PasswordConfirm: pwd})
	assert.True(t, core.IsValidationError(err))
}

func TestService_IssueNotifications(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, 1, "Root", "root@uni.edu", user.RoleAdmin)
	env.register(t, 2, "Sir Jafir", "jafirkhan@uni.edu", user.RoleTeacher)
	s1 := env.register(t, 3, "Asif Khan", "asifkhan@uni.edu", user.RoleStudent).(*user.Student)
	s2 := env.register(t, 4, "Sara Ali", "saraali@uni.edu", user.RoleStudent).(*user.Student)

	count, err := env.svc.IssueNotifications(1, []int{2, 3, 4}, "exam on monday")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, s1.ReceiveAlerts(), 1)
	assert.Same(t, s1.ReceiveAlerts()[0], s2.ReceiveAlerts()[0])

	count, err = env.svc.IssueNotifications(1, nil, "nothing")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = env.svc.IssueNotifications(2, []int{3}, "not an admin")
	assert.Equal(t, user.ErrNotAdmin, err)

	_, err = env.svc.IssueNotifications(1, []int{3, 42}, "unknown recipient")
	assert.Equal(t, user.ErrNotFound, errors.Cause(err))
	assert.Len(t, s1.ReceiveAlerts(), 1, "nothing is sent if a recipient is unknown")

	assert.Equal(t, 3, env.recorder.Notifications)
}

func TestService_LowAttendanceStudents(t *testing.T) {
	env := newTestEnv(t)
	tch := env.register(t, 2, "Sir Jafir", "jafirkhan@uni.edu", user.RoleTeacher).(*user.Teacher)
	good := env.register(t, 3, "Asif Khan", "asifkhan@uni.edu", user.RoleStudent).(*user.Student)
	bad := env.register(t, 4, "Sara Ali", "saraali@uni.edu", user.RoleStudent).(*user.Student)
	tch.AddStudent(good)
	tch.AddStudent(bad)

	for _, present := range []bool{true, true, true, false} {
		tch.MarkAttendance(good, present)
	}
	for _, present := range []bool{true, false, true, false} {
		tch.MarkAttendance(bad, present)
	}

	// configured threshold: 75
	flagged, err := env.svc.LowAttendanceStudents(2, 0)
	require.NoError(t, err)
	assert.Equal(t, []*user.Student{bad}, flagged)

	flagged, err = env.svc.LowAttendanceStudents(2, 80)
	require.NoError(t, err)
	assert.Equal(t, []*user.Student{good, bad}, flagged)

	_, err = env.svc.LowAttendanceStudents(3, 0)
	assert.Equal(t, user.ErrNotTeacher, err)
}

func TestService_QueryFilterDelete(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, 1, "Root", "root@uni.edu", user.RoleAdmin)
	env.register(t, 2, "Sir Jafir", "jafirkhan@uni.edu", user.RoleTeacher)
	env.register(t, 3, "Asif Khan", "asifkhan@uni.edu", user.RoleStudent)

	members, err := env.svc.QueryAll("-id")
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, 3, members[0].Account().ID)

	members, err = env.svc.Filter(user.QueryFilter{Search: "  khan "})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	m, err := env.svc.GetByEmail(" ROOT@uni.edu")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Account().ID)

	require.NoError(t, env.svc.Delete(1, 2))
	_, err = env.svc.GetByID(1)
	assert.Equal(t, user.ErrNotFound, err)
}
