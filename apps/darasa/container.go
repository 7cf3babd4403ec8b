package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/services/metrics"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
)

// loggerCloser flushes the pending log items on exit.
type loggerCloser interface {
	Close()
}

type loggerResult struct {
	dig.Out
	Logger core.Logger
	Closer loggerCloser
}

func newLogger(conf *core.Config) loggerResult {
	stdLogger := log.New(os.Stderr, "DARASA : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return loggerResult{Logger: logger, Closer: logger}
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger, log.New(os.Stdout, "MAIL : ", 0))
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newMetrics(conf *core.Config) *metrics.Metrics {
	return metrics.New(core.Slugify(conf.AppName))
}

func newRecorder(m *metrics.Metrics) user.Recorder { return m }

type cliParams struct {
	dig.In

	Conf    *core.Config
	UsrSvc  *user.Service
	MailSvc core.EmailService
	Metrics *metrics.Metrics
	Logger  core.Logger
}

func newCommandLine(p cliParams) *commandLine {
	return &commandLine{
		conf:    p.Conf,
		usrSvc:  p.UsrSvc,
		mailSvc: p.MailSvc,
		metrics: p.Metrics,
		logger:  p.Logger,
		out:     os.Stdout,
	}
}

// newContainer returns the dependency injection dig.Container of the CLI.
func newContainer() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(dummydb.Open))
	must(c.Provide(dummydb.NewMemberRepository))
	must(c.Provide(newEmailService))
	must(c.Provide(newMetrics))
	must(c.Provide(newRecorder))
	must(c.Provide(user.NewService))
	must(c.Provide(newCommandLine))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
