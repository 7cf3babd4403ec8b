// Package metrics counts directory events with prometheus collectors.
package metrics

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/trezcool/darasa/core/user"
)

type Metrics struct {
	registry *prometheus.Registry

	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	recoveries    *prometheus.CounterVec
	notifications prometheus.Counter
}

var _ user.Recorder = (*Metrics)(nil)

// New registers the directory collectors on a dedicated registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "members_registered_total",
			Help:      "Number of registered members by role.",
		}, []string{"role"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Number of login attempts by outcome.",
		}, []string{"success"}),
		recoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_recoveries_total",
			Help:      "Number of password recovery requests by whether the email matched a member.",
		}, []string{"found"}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Number of notifications accepted by recipients.",
		}),
	}
	m.registry.MustRegister(m.registrations, m.logins, m.recoveries, m.notifications)
	return m
}

func (m *Metrics) MemberRegistered(role string) {
	m.registrations.WithLabelValues(user.RoleName(role)).Inc()
}

func (m *Metrics) LoginAttempted(ok bool) {
	m.logins.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (m *Metrics) PasswordRecoveryRequested(found bool) {
	m.recoveries.WithLabelValues(strconv.FormatBool(found)).Inc()
}

func (m *Metrics) NotificationsIssued(count int) {
	if count > 0 {
		m.notifications.Add(float64(count))
	}
}

// WriteTo writes the collected metrics to w in the prometheus text format.
func (m *Metrics) WriteTo(w io.Writer) (int64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return 0, errors.Wrap(err, "gathering metrics")
	}
	var total int64
	for _, mf := range families {
		n, err := expfmt.MetricFamilyToText(w, mf)
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "writing metrics")
		}
	}
	return total, nil
}
