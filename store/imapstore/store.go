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

package imapstore

import (
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/mail"
	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/query"
	"github.com/vs49688/mailcrawl/store"
)

var errFolderNotOpen = errors.New("folder not open")

func (s *imapStore) DefaultFolder() (store.Folder, error) {
	if _, err := s.list("", ""); err != nil {
		return nil, err
	}

	return &folder{s: s, name: ""}, nil
}

func (s *imapStore) Folder(name string) (store.Folder, error) {
	return &folder{s: s, name: name}, nil
}

func (s *imapStore) ListFolders() ([]store.FolderInfo, error) {
	boxes, err := s.list("", "*")
	if err != nil {
		return nil, err
	}

	out := make([]store.FolderInfo, 0, len(boxes))
	for _, mb := range boxes {
		out = append(out, store.FolderInfo{
			Name:         mb.Name,
			HoldsMessage: holdsMessages(mb),
		})
	}

	return out, nil
}

func (s *imapStore) list(ref, name string) ([]*imap.MailboxInfo, error) {
	ch := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- s.c.List(ref, name, ch)
	}()

	var boxes []*imap.MailboxInfo
	for mb := range ch {
		boxes = append(boxes, mb)
	}

	if err := <-done; err != nil {
		return nil, err
	}

	return boxes, nil
}

func holdsMessages(mb *imap.MailboxInfo) bool {
	for _, attr := range mb.Attributes {
		if strings.EqualFold(attr, imap.NoSelectAttr) {
			return false
		}
	}
	return true
}

func (s *imapStore) LoggedOut() <-chan struct{} {
	return s.c.LoggedOut()
}

func (s *imapStore) Close() error {
	s.logger.Trace("imap_store_logout")
	return s.c.Logout()
}

func (f *folder) Name() string {
	return f.name
}

func (f *folder) Open(readOnly bool) error {
	status, err := f.s.c.Select(f.name, readOnly)
	if err != nil {
		return err
	}

	f.s.logger.WithFields(log.Fields{
		"name":         status.Name,
		"num_messages": status.Messages,
		"read_only":    status.ReadOnly,
	}).Trace("imap_folder_opened")

	f.status = status
	return nil
}

func (f *folder) Close() error {
	if f.status == nil {
		return nil
	}

	f.status = nil
	return f.s.c.Close()
}

func (f *folder) Search(p query.Predicate) ([]*store.Message, error) {
	if f.status == nil {
		return nil, errFolderNotOpen
	}

	seqset := new(imap.SeqSet)
	if query.IsMatchAll(p) {
		if f.status.Messages == 0 {
			return nil, nil
		}
		seqset.AddRange(1, f.status.Messages)
	} else {
		seqNums, err := f.s.c.Search(toCriteria(p))
		if err != nil {
			return nil, err
		}

		if len(seqNums) == 0 {
			return nil, nil
		}
		seqset.AddNum(seqNums...)
	}

	ch := make(chan *imap.Message, 10)
	done := make(chan error, 1)
	go func() {
		done <- f.s.c.Fetch(seqset, []imap.FetchItem{imap.FetchEnvelope, imap.FetchRFC822Size, imap.FetchUid}, ch)
	}()

	seqNums, messages := readMessages(ch)
	if err := <-done; err != nil {
		return nil, err
	}

	wantIDs := messageIDTerms(p)

	out := make([]*store.Message, 0, len(seqNums))
	for _, seq := range seqNums {
		msg := toMessage(messages[seq])
		if !hasIDs(msg, wantIDs) {
			// Servers match HEADER criteria by substring.
			continue
		}
		out = append(out, msg)
	}

	return out, nil
}

func (f *folder) Content(msg *store.Message) (io.ReadCloser, error) {
	if f.status == nil {
		return nil, errFolderNotOpen
	}

	seqset := new(imap.SeqSet)
	seqset.AddNum(msg.Ref)

	section := &imap.BodySectionName{Peek: true}

	ch := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- f.s.c.Fetch(seqset, []imap.FetchItem{section.FetchItem()}, ch)
	}()

	var body imap.Literal
	for m := range ch {
		for _, l := range m.Body {
			if body == nil {
				body = l
			}
		}
	}

	if err := <-done; err != nil {
		return nil, err
	}

	if body == nil {
		return nil, errors.New("server returned no message body")
	}

	return io.NopCloser(body), nil
}

func toCriteria(p query.Predicate) *imap.SearchCriteria {
	c := imap.NewSearchCriteria()
	for _, t := range query.Terms(p) {
		switch t.Field {
		case query.FieldSubject:
			c.Header.Add("Subject", t.Value)
		case query.FieldFrom:
			c.Header.Add("From", t.Value)
		case query.FieldTo:
			c.Header.Add("To", t.Value)
		case query.FieldBody:
			c.Body = append(c.Body, t.Value)
		case query.FieldMessageID:
			c.Header.Add("Message-Id", t.Value)
		}
	}
	return c
}

func messageIDTerms(p query.Predicate) []string {
	var ids []string
	for _, t := range query.Terms(p) {
		if t.Field == query.FieldMessageID {
			ids = append(ids, t.Value)
		}
	}
	return ids
}

func hasIDs(msg *store.Message, ids []string) bool {
	for _, id := range ids {
		if msg.Envelope.MessageID != id {
			return false
		}
	}
	return true
}

func readMessages(ch chan *imap.Message) ([]uint32, map[uint32]*imap.Message) {
	// Sometimes we have dups
	unique := map[uint32]*imap.Message{}
	for msg := range ch {
		unique[msg.SeqNum] = msg
	}

	seqNums := make([]uint32, 0, len(unique))
	for seq := range unique {
		seqNums = append(seqNums, seq)
	}

	sort.Slice(seqNums, func(i, j int) bool { return seqNums[i] < seqNums[j] })

	return seqNums, unique
}

func toMessage(m *imap.Message) *store.Message {
	msg := &store.Message{
		Ref:  m.SeqNum,
		Size: int64(m.Size),
	}

	if env := m.Envelope; env != nil {
		msg.Envelope = store.Envelope{
			MessageID: strings.TrimSpace(env.MessageId),
			Subject:   env.Subject,
			From:      toAddresses(env.From),
			To:        toAddresses(env.To),
			Date:      env.Date,
		}
	}

	return msg
}

func toAddresses(list []*imap.Address) []*mail.Address {
	out := make([]*mail.Address, 0, len(list))
	for _, a := range list {
		addr := a.MailboxName
		if a.HostName != "" {
			addr += "@" + a.HostName
		}
		out = append(out, &mail.Address{Name: a.PersonalName, Address: addr})
	}
	return out
}
