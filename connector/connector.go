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

// Package connector crawls a mailbox: it discovers message identifiers
// matching a job's filters and extracts those messages into documents.
//
// A Connector is not safe for concurrent use.
package connector

import (
	"errors"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/session"
	"github.com/vs49688/mailcrawl/store"
)

var errNotConnected = errors.New("not connected")

func New(factory store.Factory, opts ...session.Option) *Connector {
	return &Connector{factory: factory, opts: opts}
}

// Connect installs a configuration. No connection is made until one is needed.
func (c *Connector) Connect(cfg *store.Config) {
	c.Disconnect()

	cc := *cfg
	if p, ok := store.ParseProtocol(string(cfg.Protocol)); ok {
		cc.Protocol = p
	}

	cc.Properties = make(map[string]string, len(cfg.Properties))
	for k, v := range cfg.Properties {
		cc.Properties[k] = v
	}

	c.cfg = &cc
	c.sessions = session.NewManager(c.cfg, c.factory, c.opts...)
}

// Disconnect closes any open session and forgets the configuration.
func (c *Connector) Disconnect() {
	if c.sessions != nil {
		c.sessions.Teardown()
	}

	c.sessions = nil
	c.cfg = nil
}

// Poll closes the session if it has sat idle past its lifetime.
func (c *Connector) Poll() {
	if c.sessions != nil {
		c.sessions.Poll()
	}
}

// Check reconnects and reports the outcome in a form fit for display.
func (c *Connector) Check() string {
	if c.sessions == nil {
		return "Connection failed: " + errNotConnected.Error()
	}

	err := c.sessions.Check()
	switch {
	case err == nil:
		return StatusWorking
	case store.IsTemporary(err):
		log.WithError(err).Warn("check_connection_temporary_failure")
		return "Connection temporarily failed: " + err.Error()
	default:
		log.WithError(err).Warn("check_connection_failure")
		return "Connection failed: " + err.Error()
	}
}

// BinNames returns the throttling bins a document belongs to: its server.
func (c *Connector) BinNames(string) []string {
	if c.cfg == nil {
		return []string{""}
	}
	return []string{c.cfg.Host}
}

func (c *Connector) Activities() []string {
	return []string{ActivityFetch}
}

func (c *Connector) RelationshipTypes() []string {
	return []string{RelationshipChild}
}

// DocumentVersions returns VersionToken for each id, or a single token when
// ids is empty.
func (c *Connector) DocumentVersions(ids []string) []string {
	n := len(ids)
	if n == 0 {
		n = 1
	}

	out := make([]string, n)
	for i := range out {
		out[i] = VersionToken
	}
	return out
}

// ListFolders returns the sorted names of every folder that can hold messages.
func (c *Connector) ListFolders() ([]string, error) {
	s, err := c.store()
	if err != nil {
		return nil, err
	}

	infos, err := s.ListFolders()
	if err != nil {
		return nil, &store.RepositoryError{Op: "list folders", Err: err}
	}

	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.HoldsMessage {
			names = append(names, fi.Name)
		}
	}

	sort.Strings(names)
	return names, nil
}

func (c *Connector) store() (store.Store, error) {
	if c.sessions == nil {
		return nil, errNotConnected
	}
	return c.sessions.Ensure()
}

// openFolder opens a folder read-only. Stores without folders only have
// the inbox, whatever the job asked for.
func (c *Connector) openFolder(s store.Store, name string) (store.Folder, error) {
	if !c.cfg.Protocol.IsIMAP() {
		name = store.InboxName
	}

	f, err := s.Folder(name)
	if err != nil {
		return nil, &store.RepositoryError{Op: "open folder " + name, Err: err}
	}

	if err := f.Open(true); err != nil {
		return nil, &store.RepositoryError{Op: "open folder " + name, Err: err}
	}

	return f, nil
}

func closeFolder(f store.Folder) {
	if err := f.Close(); err != nil {
		log.WithError(err).WithField("folder", f.Name()).Warn("folder_close_failed")
	}
}

// Folder returns the value of the folder filter, if any.
func (s *JobSpec) Folder() (string, bool) {
	for _, f := range s.Filters {
		if f.IsFolder() {
			return f.Value, true
		}
	}
	return "", false
}
