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

package pop3store

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/emersion/go-message/mail"
	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/parts"
	"github.com/vs49688/mailcrawl/query"
	"github.com/vs49688/mailcrawl/store"
)

var (
	errFolderNotOpen = errors.New("folder not open")
	errNoSuchFolder  = errors.New("pop3 has no such folder")
)

func (s *pop3Store) DefaultFolder() (store.Folder, error) {
	if err := s.check(s.c.Noop()); err != nil {
		return nil, err
	}

	return &folder{s: s, name: ""}, nil
}

func (s *pop3Store) Folder(name string) (store.Folder, error) {
	return &folder{s: s, name: name}, nil
}

func (s *pop3Store) ListFolders() ([]store.FolderInfo, error) {
	return []store.FolderInfo{{Name: store.InboxName, HoldsMessage: true}}, nil
}

func (s *pop3Store) LoggedOut() <-chan struct{} {
	return s.gone
}

func (s *pop3Store) Close() error {
	s.logger.Trace("pop3_store_quit")
	err := s.c.Quit()
	s.markGone()
	return err
}

func (s *pop3Store) markGone() {
	s.goneOnce.Do(func() { close(s.gone) })
}

// check marks the store as gone if err indicates the connection broke.
func (s *pop3Store) check(err error) error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.As(err, &netErr) {
		s.logger.WithError(err).Debug("pop3_connection_lost")
		s.markGone()
	}

	return err
}

func (f *folder) Name() string {
	return f.name
}

func (f *folder) Open(bool) error {
	if !strings.EqualFold(f.name, store.InboxName) {
		return fmt.Errorf("%w: %v", errNoSuchFolder, f.name)
	}

	f.open = true
	f.cache = map[int]*matchable{}
	return nil
}

func (f *folder) Close() error {
	f.open = false
	f.cache = nil
	return nil
}

func (f *folder) Search(p query.Predicate) ([]*store.Message, error) {
	if !f.open {
		return nil, errFolderNotOpen
	}

	ids, err := f.s.c.List(0)
	if err := f.s.check(err); err != nil {
		return nil, err
	}

	needsBody := query.NeedsBody(p)

	out := make([]*store.Message, 0, len(ids))
	for _, id := range ids {
		m, err := f.candidate(id.ID, needsBody)
		if err != nil {
			return nil, err
		}

		if !query.Match(p, m) {
			continue
		}

		out = append(out, &store.Message{
			Ref:      uint32(id.ID),
			Size:     int64(id.Size),
			Envelope: m.env,
		})
	}

	f.s.logger.WithFields(log.Fields{
		"num_messages": len(ids),
		"num_matched":  len(out),
	}).Trace("pop3_search")

	return out, nil
}

// candidate loads what is needed to evaluate a predicate against one
// message: the headers, plus the body text when asked for. Results are
// cached until the folder is closed.
func (f *folder) candidate(id int, withBody bool) (*matchable, error) {
	if m, ok := f.cache[id]; ok && (m.hasBody || !withBody) {
		return m, nil
	}

	m, err := f.load(id, withBody)
	if err != nil {
		return nil, err
	}

	f.cache[id] = m
	return m, nil
}

func (f *folder) load(id int, withBody bool) (*matchable, error) {
	if withBody {
		buf, err := f.s.c.RetrRaw(id)
		if err := f.s.check(err); err != nil {
			return nil, err
		}

		root, err := parts.Parse(buf)
		if err != nil {
			return nil, err
		}

		return &matchable{
			env:     store.EnvelopeFromHeader(mail.Header{Header: root.Header}),
			body:    parts.BodyText(root),
			hasBody: true,
		}, nil
	}

	e, err := f.s.c.Top(id, 0)
	if err := f.s.check(err); err != nil {
		return nil, err
	}

	return &matchable{env: store.EnvelopeFromHeader(mail.Header{Header: e.Header})}, nil
}

func (f *folder) Content(msg *store.Message) (io.ReadCloser, error) {
	if !f.open {
		return nil, errFolderNotOpen
	}

	buf, err := f.s.c.RetrRaw(int(msg.Ref))
	if err := f.s.check(err); err != nil {
		return nil, err
	}

	return io.NopCloser(buf), nil
}

type matchable struct {
	env     store.Envelope
	body    string
	hasBody bool
}

func (m *matchable) MessageID() string { return m.env.MessageID }
func (m *matchable) Subject() string   { return m.env.Subject }
func (m *matchable) From() []string    { return store.FormatAddresses(m.env.From) }
func (m *matchable) To() []string      { return store.FormatAddresses(m.env.To) }
func (m *matchable) BodyText() string  { return m.body }
