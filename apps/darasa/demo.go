package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/payroll"
	"github.com/trezcool/darasa/core/record"
	"github.com/trezcool/darasa/core/user"
)

// demo walks through the relationships of the roster and prints what happens.
func (cli *commandLine) demo(showMetrics bool) error {
	r, err := cli.seed()
	if err != nil {
		return err
	}
	asif, sara, omar := r.students[0], r.students[1], r.students[2]

	cli.section("Students")
	for _, s := range r.students {
		fmt.Fprintf(cli.out, "%s - profile of %s created at %s\n",
			s.ViewDashboard(), s.Profile().StudentName, s.Profile().CreatedAt.Format("2006-01-02"))
	}

	cli.section("Attendance")
	asif.MarkAttendance(true)
	asif.MarkAttendance(false)
	for _, a := range asif.Attendance() {
		fmt.Fprintf(cli.out, "%s #%d: %s\n", asif.Name, a.ID, a.Status)
	}
	for _, present := range []bool{true, true, true, false} {
		r.teacher.MarkAttendance(sara, present)
	}
	for _, s := range r.students {
		rate, total := s.AttendanceRate()
		fmt.Fprintf(cli.out, "%s: %.1f%% of %d, flagged under 60%%: %t\n", s.Name, rate, total, r.teacher.FlagLowAttendance(s, 60))
	}
	flagged, err := cli.usrSvc.LowAttendanceStudents(r.teacher.ID, 0)
	if err != nil {
		return errors.Wrap(err, "flagging students")
	}
	fmt.Fprintf(cli.out, "under %.0f%%: %s\n", cli.conf.LowAttendanceThreshold, studentNames(flagged))

	cli.section("Schedules & reports")
	r.teacher.CreateSchedule(1, "Mathematics", "Mon 09:00")
	r.teacher.CreateSchedule(2, "Physics", "Wed 11:00")
	for _, sch := range r.teacher.Schedules() {
		fmt.Fprintf(cli.out, "%s teaches %s on %s\n", r.teacher.Name, sch.CourseName, sch.TimeSlot)
	}
	rep := r.teacher.GenerateReport(asif, record.ReportProgress)
	fmt.Fprintf(cli.out, "report #%d: %s\n", rep.ID, rep.Content)
	fmt.Fprintf(cli.out, "exported to %s\n", r.owner.ExportReport(rep))
	fmt.Fprintf(cli.out, "leave application accepted: %t\n", omar.SubmitLeaveApplication("family event", rep.GeneratedAt, rep.GeneratedAt.AddDate(0, 0, 2)))

	cli.section("Administration")
	fmt.Fprintf(cli.out, "%s manages %d members\n", r.owner.Name, len(r.owner.ManagedUsers()))
	fmt.Fprintf(cli.out, "add %s again: %t\n", asif.Name, r.owner.AddUser(asif))
	fmt.Fprintf(cli.out, "remove unknown member 42: %t (still %d members)\n", r.owner.RemoveUser(42), len(r.owner.ManagedUsers()))
	fmt.Fprintf(cli.out, "promote %s to %s: %t\n", r.principal.Name, user.RoleName(user.RoleAdminOwner), r.owner.EditPermissions(r.principal.ID, user.RoleAdminOwner))
	fmt.Fprintf(cli.out, "make %s an admin: %t\n", r.teacher.Name, r.owner.EditPermissions(r.teacher.ID, user.RoleAdmin))
	fmt.Fprintf(cli.out, "notify nobody: %d sent\n", r.owner.IssueNotifications(nil, "hello"))

	recipients := []int{r.teacher.ID}
	for _, s := range r.students {
		recipients = append(recipients, s.ID)
	}
	sent, err := cli.usrSvc.IssueNotifications(r.owner.ID, recipients, "School closes early on Friday.")
	if err != nil {
		return errors.Wrap(err, "issuing notifications")
	}
	fmt.Fprintf(cli.out, "notify the class: %d sent\n", sent)
	for _, n := range sara.ReceiveAlerts() {
		fmt.Fprintf(cli.out, "%s received notification #%d: %s\n", sara.Name, n.ID, n.Message)
	}

	cli.section("Accounts")
	fmt.Fprintf(cli.out, "login with a wrong password: %t\n", cli.usrSvc.Login(omar.Email, "nope"))
	fmt.Fprintf(cli.out, "login: %t\n", cli.usrSvc.Login(omar.Email, studentPwd))
	fmt.Fprintf(cli.out, "recover password of unknown@darasa.school: %t\n", cli.usrSvc.RecoverPassword("unknown@darasa.school"))
	fmt.Fprintf(cli.out, "recover password of %s: %t\n", omar.Email, cli.usrSvc.RecoverPassword(omar.Email))
	cli.mailSvc.Wait()

	cli.section("Payroll")
	shared := payroll.NewSalary(3000, 5000)
	for _, emp := range []*payroll.Employee{
		payroll.NewEmployee(r.teacher.Name, 41, shared),
		payroll.NewEmployee(r.principal.Name, 52, shared),
	} {
		fmt.Fprintf(cli.out, "%s: annual salary %d\n", emp.Name, emp.TotalSalary())
	}

	if showMetrics {
		cli.section("Metrics")
		if _, err := cli.metrics.WriteTo(cli.out); err != nil {
			return err
		}
	}
	return nil
}

func (cli *commandLine) section(title string) {
	fmt.Fprintf(cli.out, "\n== %s ==\n", title)
}

func studentNames(students []*user.Student) string {
	if len(students) == 0 {
		return "nobody"
	}
	var names string
	for i, s := range students {
		if i > 0 {
			names += ", "
		}
		names += s.Name
	}
	return names
}
