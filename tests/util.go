package testutil

import (
	"fmt"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// NewConfig returns a config suitable for tests: it does not read the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:                       "TEST",
		TestMode:                  true,
		AppName:                   "Darasa",
		Build:                     "test",
		SecretKey:                 "test-secret-key",
		DefaultFromEmail:          mail.Address{Name: "Darasa", Address: "noreply@darasa.test"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		FrontendBaseURL:           "http://darasa.test",
		LowAttendanceThreshold:    75,
		ReportExportDir:           "reports",
		ServerHost:                "darasa.test",
	}
}

// LogEntry is a message recorded by Logger.
type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// Logger records log entries instead of printing them.
type Logger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("debug", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("info", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("warn", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("error", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("fatal", msg, args) }

// Entries returns the recorded entries with the given level, all entries if level is empty.
func (l *Logger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var res []LogEntry
	for _, e := range l.entries {
		if level == "" || e.Level == level {
			res = append(res, e)
		}
	}
	return res
}

// Recorder counts directory events in memory.
type Recorder struct {
	mu            sync.Mutex
	Registered    map[string]int
	Logins        map[bool]int
	Recoveries    map[bool]int
	Notifications int
}

var _ user.Recorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		Registered: make(map[string]int),
		Logins:     make(map[bool]int),
		Recoveries: make(map[bool]int),
	}
}

func (r *Recorder) MemberRegistered(role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Registered[role]++
}

func (r *Recorder) LoginAttempted(ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Logins[ok]++
}

func (r *Recorder) PasswordRecoveryRequested(found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Recoveries[found]++
}

func (r *Recorder) NotificationsIssued(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notifications += count
}

// CreateMember builds a member with the given role and stores it in repo, bypassing validation.
func CreateMember(t *testing.T, repo user.Repository, id int, name, pwd, role string) user.Member {
	t.Helper()
	nm := user.NewMember{
		ID:       id,
		Name:     name,
		Email:    fmt.Sprintf("%s@uni.edu", core.Slugify(name)),
		Role:     role,
		Password: pwd,
	}
	m, err := nm.Build()
	if err != nil {
		t.Fatalf("CreateMember() failed: %v", err)
	}
	if m, err = repo.CreateMember(m); err != nil {
		t.Fatalf("CreateMember() failed: %v", err)
	}
	return m
}
