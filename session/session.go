/*
 * MailCrawl - Copyright (C) 2022 Zane van Iperen.
 *    Contact: zane@zanevaniperen.com
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 2, and only
 * version 2 as published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 59 Temple Place, Suite 330, Boston, MA  02111-1307  USA
 */

package session

import (
	"errors"
	"net"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/store"
)

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.ttl = ttl
	}
}

func WithClock(now Clock) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(cfg *store.Config, factory store.Factory, opts ...Option) *Manager {
	port := cfg.Port
	if port == 0 {
		port = store.DefaultPort(cfg.Protocol)
	}

	u := url.URL{
		Scheme: string(cfg.Protocol),
		User:   url.User(cfg.Username),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
	}

	m := &Manager{
		cfg:     cfg,
		factory: factory,
		ttl:     DefaultTTL,
		now:     time.Now,
		logURL:  u.String(),
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) log() *log.Entry {
	return log.WithField("url", m.logURL)
}

// Ensure returns the live store, opening a new one if there is none, it
// has expired or the connection has dropped. Each call extends the expiry.
func (m *Manager) Ensure() (store.Store, error) {
	now := m.now()

	if m.store != nil && (!now.Before(m.expiry) || isLoggedOut(m.store)) {
		m.log().WithField("expiry", m.expiry).Debug("session_stale")
		m.Teardown()
	}

	if m.store == nil {
		s, err := m.factory.NewStore(m.cfg)
		if err != nil {
			m.log().WithError(err).Warn("session_open_failed")
			return nil, &store.ConnectionError{Op: "open session", Err: err}
		}

		m.log().Debug("session_established")
		m.store = s
	}

	m.expiry = now.Add(m.ttl)
	return m.store, nil
}

func isLoggedOut(s store.Store) bool {
	ch := s.LoggedOut()
	if ch == nil {
		return false
	}

	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// Teardown closes the current store, if any. Close errors are logged and
// otherwise ignored.
func (m *Manager) Teardown() {
	if m.store == nil {
		return
	}

	if err := m.store.Close(); err != nil {
		m.log().WithError(err).Warn("session_close_failed")
	} else {
		m.log().Debug("session_closed")
	}

	m.store = nil
	m.expiry = time.Time{}
}

// Poll tears down the session once its expiry has passed.
func (m *Manager) Poll() {
	if m.store != nil && !m.now().Before(m.expiry) {
		m.log().Trace("session_expired")
		m.Teardown()
	}
}

// Live reports whether a session is currently open.
func (m *Manager) Live() bool {
	return m.store != nil
}

// Check opens a fresh session and asks the server for its default folder.
func (m *Manager) Check() error {
	m.Teardown()

	s, err := m.Ensure()
	if err != nil {
		return err
	}

	if _, err := s.DefaultFolder(); err != nil {
		var re *store.RepositoryError
		if errors.As(err, &re) {
			return err
		}
		return &store.RepositoryError{Op: "default folder", Err: err}
	}

	return nil
}
