package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

// demo roster passwords, they satisfy the password policy
const (
	ownerPwd     = "Rt9#vK2m!x"
	principalPwd = "Pq4$nZ8w@c"
	teacherPwd   = "Tj6&hB3s!e"
	studentPwd   = "Kx7#mQ2v!p"
)

type roster struct {
	owner     *user.Admin
	principal *user.Admin
	teacher   *user.Teacher
	students  []*user.Student
}

// seed registers the demo roster once. The owner manages every other member
// and the teacher aggregates every student.
func (cli *commandLine) seed() (*roster, error) {
	if cli.roster != nil {
		return cli.roster, nil
	}

	members := []user.NewMember{
		{ID: 1, Name: "Root Owner", Email: "owner@darasa.school", Role: user.RoleAdminOwner, Password: ownerPwd},
		{ID: 2, Name: "Grace Principal", Email: "principal@darasa.school", Role: user.RoleAdminPrincipal, Password: principalPwd},
		{ID: 10, Name: "Sir Jafir", Email: "jafirkhan@darasa.school", Role: user.RoleTeacher, Password: teacherPwd},
		{ID: 3, Name: "Asif Khan", Email: "asifkhan@darasa.school", Role: user.RoleStudent, Password: studentPwd},
		{ID: 4, Name: "Sara Ali", Email: "saraali@darasa.school", Role: user.RoleStudent, Password: studentPwd},
		{ID: 5, Name: "Omar Farooq", Email: "omarfarooq@darasa.school", Role: user.RoleStudent, Password: studentPwd},
	}

	r := new(roster)
	for _, nm := range members {
		nm.PasswordConfirm = nm.Password
		m, err := cli.usrSvc.Register(nm)
		if err != nil {
			return nil, errors.Wrapf(err, "seeding %s", nm.Email)
		}

		switch v := m.(type) {
		case *user.Admin:
			if r.owner == nil {
				r.owner = v
			} else {
				r.principal = v
			}
		case *user.Teacher:
			r.teacher = v
		case *user.Student:
			r.students = append(r.students, v)
		}
	}

	for _, m := range []user.Member{r.principal, r.teacher} {
		r.owner.AddUser(m)
	}
	for _, s := range r.students {
		r.owner.AddUser(s)
		r.teacher.AddStudent(s)
	}
	r.owner.ConfigureSettings(map[string]string{user.SettingReportExportDir: cli.conf.ReportExportDir})

	cli.roster = r
	return r, nil
}
