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
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/knadh/go-pop3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vs49688/mailcrawl/internal"
	"github.com/vs49688/mailcrawl/query"
	"github.com/vs49688/mailcrawl/store"
)

type fakeConn struct {
	raw [][]byte

	user, pass string
	authErr    error
	listErr    error
	noopErr    error
	tops       int
	retrs      int
	quitCalls  int
}

func (f *fakeConn) Auth(user, password string) error {
	f.user, f.pass = user, password
	return f.authErr
}

func (f *fakeConn) List(_ int) ([]pop3.MessageID, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]pop3.MessageID, 0, len(f.raw))
	for i, b := range f.raw {
		out = append(out, pop3.MessageID{ID: i + 1, Size: len(b)})
	}
	return out, nil
}

func (f *fakeConn) Top(id int, _ int) (*message.Entity, error) {
	f.tops++
	b, err := f.get(id)
	if err != nil {
		return nil, err
	}

	header := b
	if i := bytes.Index(b, []byte("\r\n\r\n")); i >= 0 {
		header = b[:i+4]
	}
	return message.Read(bytes.NewReader(header))
}

func (f *fakeConn) RetrRaw(id int) (*bytes.Buffer, error) {
	f.retrs++
	b, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(append([]byte(nil), b...)), nil
}

func (f *fakeConn) get(id int) ([]byte, error) {
	if id < 1 || id > len(f.raw) {
		return nil, fmt.Errorf("unknown message %d", id)
	}
	return f.raw[id-1], nil
}

func (f *fakeConn) Noop() error {
	return f.noopErr
}

func (f *fakeConn) Quit() error {
	f.quitCalls++
	return nil
}

func newFakeConn() *fakeConn {
	return &fakeConn{raw: [][]byte{
		[]byte(internal.TestMessage{MessageID: "<a@example.com>", Subject: "Invoice 42", Body: "please pay"}.Plain()),
		[]byte(internal.TestMessage{MessageID: "<b@example.com>", From: "Alice <alice@example.com>", Subject: "Hello", Body: "hi there"}.Plain()),
		[]byte(internal.TestMessage{MessageID: "<c@example.com>", Subject: "invoice 43", Body: "second reminder"}.Plain()),
	}}
}

func factoryFor(c *fakeConn, opts *pop3.Opt) *Factory {
	return &Factory{Dial: func(opt pop3.Opt) (Conn, error) {
		if opts != nil {
			*opts = opt
		}
		return c, nil
	}}
}

func openInbox(t *testing.T, c *fakeConn) (store.Store, store.Folder) {
	s, err := factoryFor(c, nil).NewStore(&store.Config{
		Host:     "mail.example.com",
		Protocol: store.ProtocolPOP3,
		Username: "user",
		Password: "pass",
	})
	require.NoError(t, err)

	f, err := s.Folder("inbox")
	require.NoError(t, err)
	require.NoError(t, f.Open(true))
	return s, f
}

func ids(msgs []*store.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Envelope.MessageID)
	}
	return out
}

func TestNewStoreOptions(t *testing.T) {
	c := newFakeConn()
	var opt pop3.Opt

	_, err := factoryFor(c, &opt).NewStore(&store.Config{
		Host:     "mail.example.com",
		Protocol: store.ProtocolPOP3S,
		Username: "user",
		Password: "pass",
		Properties: map[string]string{
			store.PropertyDialTimeout:   "5s",
			store.PropertyTLSSkipVerify: "true",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", opt.Host)
	assert.Equal(t, 995, opt.Port)
	assert.Equal(t, 5*time.Second, opt.DialTimeout)
	assert.True(t, opt.TLSEnabled)
	assert.True(t, opt.TLSSkipVerify)
	assert.Equal(t, "user", c.user)
	assert.Equal(t, "pass", c.pass)
}

func TestNewStoreDefaults(t *testing.T) {
	var opt pop3.Opt
	_, err := factoryFor(newFakeConn(), &opt).NewStore(&store.Config{Host: "h", Protocol: store.ProtocolPOP3})
	require.NoError(t, err)

	assert.Equal(t, 110, opt.Port)
	assert.Equal(t, defaultDialTimeout, opt.DialTimeout)
	assert.False(t, opt.TLSEnabled)
}

func TestNewStoreBadTimeout(t *testing.T) {
	_, err := factoryFor(newFakeConn(), nil).NewStore(&store.Config{
		Host:       "h",
		Protocol:   store.ProtocolPOP3,
		Properties: map[string]string{store.PropertyDialTimeout: "soon"},
	})
	assert.Error(t, err)
}

func TestNewStoreAuthFailureQuits(t *testing.T) {
	c := newFakeConn()
	c.authErr = errors.New("-ERR bad password")

	_, err := factoryFor(c, nil).NewStore(&store.Config{Host: "h", Protocol: store.ProtocolPOP3})
	assert.EqualError(t, err, "-ERR bad password")
	assert.Equal(t, 1, c.quitCalls)
}

func TestNewStoreWrongProtocol(t *testing.T) {
	_, err := factoryFor(newFakeConn(), nil).NewStore(&store.Config{Host: "h", Protocol: store.ProtocolIMAP})
	assert.Error(t, err)
}

func TestSearchMatchAll(t *testing.T) {
	c := newFakeConn()
	_, f := openInbox(t, c)

	msgs, err := f.Search(query.MatchAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"<a@example.com>", "<b@example.com>", "<c@example.com>"}, ids(msgs))
	assert.Equal(t, uint32(2), msgs[1].Ref)
	assert.Equal(t, int64(len(c.raw[1])), msgs[1].Size)
	assert.Equal(t, 0, c.retrs)
}

func TestSearchSubjectCaseInsensitive(t *testing.T) {
	_, f := openInbox(t, newFakeConn())

	msgs, err := f.Search(query.Compile([]query.Filter{{Name: "subject", Value: "INVOICE"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"<a@example.com>", "<c@example.com>"}, ids(msgs))
}

func TestSearchFrom(t *testing.T) {
	_, f := openInbox(t, newFakeConn())

	msgs, err := f.Search(query.Compile([]query.Filter{{Name: "from", Value: "alice"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"<b@example.com>"}, ids(msgs))
}

func TestSearchBodyFetchesMessages(t *testing.T) {
	c := newFakeConn()
	_, f := openInbox(t, c)

	msgs, err := f.Search(query.Compile([]query.Filter{
		{Name: "subject", Value: "invoice"},
		{Name: "body", Value: "reminder"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"<c@example.com>"}, ids(msgs))
	assert.Equal(t, 3, c.retrs)
	assert.Equal(t, 0, c.tops)
}

func TestSearchMessageIDExact(t *testing.T) {
	_, f := openInbox(t, newFakeConn())

	msgs, err := f.Search(query.MessageID("<b@example.com>"))
	require.NoError(t, err)
	assert.Equal(t, []string{"<b@example.com>"}, ids(msgs))

	msgs, err = f.Search(query.MessageID("b@example.com"))
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestSearchCachesHeaders(t *testing.T) {
	c := newFakeConn()
	_, f := openInbox(t, c)

	for i := 0; i < 50; i++ {
		msgs, err := f.Search(query.MessageID("<b@example.com>"))
		require.NoError(t, err)
		require.Len(t, msgs, 1)
	}
	assert.Equal(t, 3, c.tops)

	_, err := f.Search(query.Compile([]query.Filter{{Name: "body", Value: "reminder"}}))
	require.NoError(t, err)
	assert.Equal(t, 3, c.retrs)

	_, err = f.Search(query.Compile([]query.Filter{{Name: "body", Value: "pay"}}))
	require.NoError(t, err)
	assert.Equal(t, 3, c.retrs)
	assert.Equal(t, 3, c.tops)

	require.NoError(t, f.Close())
	require.NoError(t, f.Open(true))

	_, err = f.Search(query.MatchAll)
	require.NoError(t, err)
	assert.Equal(t, 6, c.tops)
}

func TestContent(t *testing.T) {
	c := newFakeConn()
	_, f := openInbox(t, c)

	rc, err := f.Content(&store.Message{Ref: 3})
	require.NoError(t, err)

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, c.raw[2], b)
}

func TestOnlyInbox(t *testing.T) {
	s, _ := openInbox(t, newFakeConn())

	f, err := s.Folder("Archive")
	require.NoError(t, err)
	assert.ErrorIs(t, f.Open(true), errNoSuchFolder)

	_, err = f.Search(query.MatchAll)
	assert.ErrorIs(t, err, errFolderNotOpen)

	folders, err := s.ListFolders()
	require.NoError(t, err)
	assert.Equal(t, []store.FolderInfo{{Name: "INBOX", HoldsMessage: true}}, folders)
}

func TestConnectionLost(t *testing.T) {
	c := newFakeConn()
	s, f := openInbox(t, c)

	c.listErr = fmt.Errorf("read: %w", io.EOF)
	_, err := f.Search(query.MatchAll)
	assert.Error(t, err)

	select {
	case <-s.LoggedOut():
	default:
		t.Fatal("store not marked as gone")
	}
}

func TestProtocolErrorKeepsSession(t *testing.T) {
	c := newFakeConn()
	s, f := openInbox(t, c)

	c.listErr = errors.New("-ERR mailbox locked")
	_, err := f.Search(query.MatchAll)
	assert.Error(t, err)

	select {
	case <-s.LoggedOut():
		t.Fatal("store marked as gone")
	default:
	}
}

func TestCloseAndDefaultFolder(t *testing.T) {
	c := newFakeConn()
	s, _ := openInbox(t, c)

	_, err := s.DefaultFolder()
	require.NoError(t, err)

	c.noopErr = errors.New("-ERR")
	_, err = s.DefaultFolder()
	assert.Error(t, err)

	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())
	assert.Equal(t, 2, c.quitCalls)
	<-s.LoggedOut()
}

func TestMatchableFormatsAddresses(t *testing.T) {
	e, err := message.Read(strings.NewReader("From: Bob <bob@example.com>\r\nTo: a@example.com, b@example.com\r\n\r\n"))
	require.NoError(t, err)

	m := &matchable{env: store.EnvelopeFromHeader(mail.Header{Header: e.Header})}
	assert.Equal(t, []string{"Bob <bob@example.com>"}, m.From())
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, m.To())
}
