package user

import (
	"errors"
	"fmt"
	"net/mail"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound     = errors.New("user not found")
	ErrIDExists     = errors.New("a user with this id already exists")
	ErrEmailExists  = errors.New("a user with this email already exists")
	ErrInvalidRole  = errors.New("invalid role")
	ErrNotAdmin     = errors.New("user is not an admin")
	ErrNotTeacher   = errors.New("user is not a teacher")
	ErrInvalidReset = errors.New("invalid password reset link")
)

type (
	Repository interface {
		CheckUniqueness(id int, email string) error
		CreateMember(m Member) (Member, error)
		// QueryAllMembers returns all members ordered by the given orderings (by ID if none).
		QueryAllMembers(ordering ...core.DBOrdering) ([]Member, error)
		GetMemberByID(id int) (Member, error)
		GetMemberByEmail(email string) (Member, error)
		// FilterMembers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Email.
		FilterMembers(filter QueryFilter) ([]Member, error)
		UpdateMember(m Member) (Member, error)
		DeleteMembersByID(ids ...int) error
	}

	// Recorder records directory events.
	Recorder interface {
		MemberRegistered(role string)
		LoginAttempted(ok bool)
		PasswordRecoveryRequested(found bool)
		NotificationsIssued(count int)
	}

	Service struct {
		repo     Repository
		mailSvc  core.EmailService
		conf     *core.Config
		logger   core.Logger
		recorder Recorder
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger, recorder Recorder) *Service {
	return &Service{
		repo:     repo,
		mailSvc:  mailSvc,
		conf:     conf,
		logger:   logger,
		recorder: recorder,
	}
}

func (svc *Service) checkUniqueness(id int, email string) error {
	if err := svc.repo.CheckUniqueness(id, email); err != nil {
		var field string
		switch err {
		case ErrIDExists:
			field = "id"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Register validates nm and adds the resulting member to the directory.
func (svc *Service) Register(nm NewMember) (Member, error) {
	if err := nm.Validate(svc); err != nil {
		return nil, err
	}
	m, err := nm.Build()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "building member")
	}
	if m, err = svc.repo.CreateMember(m); err != nil {
		return nil, pkgerrors.Wrap(err, "creating member")
	}

	svc.recorder.MemberRegistered(m.Role())
	svc.logger.Info(fmt.Sprintf("registered %s %d", RoleName(m.Role()), m.Account().ID), *m.Account())
	return m, nil
}

// Login checks the credentials of the member with the given email.
func (svc *Service) Login(email, pwd string) bool {
	email = core.CleanString(email, true /* lower */)
	m, err := svc.repo.GetMemberByEmail(email)
	if err != nil {
		if err != ErrNotFound {
			svc.logger.Error("finding member by email", pkgerrors.Wrap(err, "login"))
		}
		svc.recorder.LoginAttempted(false)
		return false
	}

	ok := m.Account().Login(email, pwd)
	svc.recorder.LoginAttempted(ok)
	if !ok {
		svc.logger.Warn("login failed", *m.Account())
	}
	return ok
}

// RecoverPassword sends a password reset email to the member with the given email.
// It reports whether such a member exists.
func (svc *Service) RecoverPassword(email string) bool {
	email = core.CleanString(email, true /* lower */)
	m, err := svc.repo.GetMemberByEmail(email)
	if err != nil {
		if err != ErrNotFound {
			svc.logger.Error("finding member by email", pkgerrors.Wrap(err, "recovering password"))
		}
		svc.recorder.PasswordRecoveryRequested(false)
		return false
	}

	usr := m.Account()
	if !usr.RecoverPassword(email) {
		svc.recorder.PasswordRecoveryRequested(false)
		return false
	}
	svc.sendPasswordResetMail(*usr)
	svc.recorder.PasswordRecoveryRequested(true)
	return true
}

func (svc *Service) sendPasswordResetMail(usr User) {
	msg := core.NewEmailMessage("Password Reset", mail.Address{Name: usr.Name, Address: usr.Email})
	msg.TemplateName = "password_reset"
	msg.TemplateData = struct {
		Name  string
		UID   string
		Token string
	}{
		Name:  usr.Name,
		UID:   EncodeUID(usr),
		Token: makeToken(usr, svc.conf.SecretKey),
	}
	svc.mailSvc.SendMessages(msg)
}

// ResetPassword sets a new password using a token sent by RecoverPassword.
func (svc *Service) ResetPassword(rp ResetUserPassword) error {
	if err := rp.Validate(); err != nil {
		return err
	}
	id, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(ErrInvalidReset, core.FieldError{Field: "uid", Error: err.Error()})
	}
	m, err := svc.repo.GetMemberByID(id)
	if err != nil {
		if err == ErrNotFound {
			return core.NewValidationError(ErrInvalidReset, core.FieldError{Field: "uid", Error: err.Error()})
		}
		return pkgerrors.Wrap(err, "finding member by id")
	}

	usr := m.Account()
	if err = verifyToken(*usr, rp.Token, svc.conf.SecretKey, svc.conf.PasswordResetTimeoutDelta); err != nil {
		return core.NewValidationError(ErrInvalidReset, core.FieldError{Field: "token", Error: err.Error()})
	}
	if err = usr.SetPassword(rp.Password); err != nil {
		return pkgerrors.Wrap(err, "setting password")
	}
	if _, err = svc.repo.UpdateMember(m); err != nil {
		return pkgerrors.Wrap(err, "updating member")
	}
	svc.logger.Info("password reset", *usr)
	return nil
}

// IssueNotifications makes the admin with the given ID notify the members with the given IDs.
func (svc *Service) IssueNotifications(adminID int, recipientIDs []int, message string) (int, error) {
	m, err := svc.repo.GetMemberByID(adminID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "finding admin")
	}
	admin, ok := m.(*Admin)
	if !ok {
		return 0, ErrNotAdmin
	}

	recipients := make([]Member, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		r, err := svc.repo.GetMemberByID(id)
		if err != nil {
			return 0, pkgerrors.Wrapf(err, "finding recipient %d", id)
		}
		recipients = append(recipients, r)
	}

	count := admin.IssueNotifications(recipients, message)
	svc.recorder.NotificationsIssued(count)
	return count, nil
}

// LowAttendanceStudents returns the students of the teacher with the given ID whose attendance is below threshold.
// The configured threshold is used if threshold <= 0.
func (svc *Service) LowAttendanceStudents(teacherID int, threshold float64) ([]*Student, error) {
	m, err := svc.repo.GetMemberByID(teacherID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "finding teacher")
	}
	teacher, ok := m.(*Teacher)
	if !ok {
		return nil, ErrNotTeacher
	}
	if threshold <= 0 {
		threshold = svc.conf.LowAttendanceThreshold
	}
	return teacher.LowAttendanceStudents(threshold), nil
}

func (svc *Service) QueryAll(ordering string) ([]Member, error) {
	return svc.repo.QueryAllMembers(core.ParseOrdering(ordering)...)
}

func (svc *Service) GetByID(id int) (Member, error) {
	return svc.repo.GetMemberByID(id)
}

func (svc *Service) GetByEmail(email string) (Member, error) {
	return svc.repo.GetMemberByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) Filter(filter QueryFilter) ([]Member, error) {
	filter.Clean()
	return svc.repo.FilterMembers(filter)
}

func (svc *Service) Delete(ids ...int) error {
	return svc.repo.DeleteMembersByID(ids...)
}
