package internal

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap/backend"
	"github.com/emersion/go-imap/backend/memory"
	"github.com/emersion/go-imap/server"
	"github.com/stretchr/testify/assert"
)

const (
	TestUsername = "username"
	TestPassword = "password"
)

// TestServer is an in-process IMAP server backed by memory.
type TestServer struct {
	Server  *server.Server
	Address string
	User    backend.User
	Inbox   *memory.Mailbox
}

func BuildTestIMAPServer(t *testing.T) *TestServer {
	be := memory.New()
	user, err := be.Login(nil, TestUsername, TestPassword)
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mb, err := user.GetMailbox("INBOX")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	mailbox := mb.(*memory.Mailbox)
	mailbox.Messages = nil

	s := server.New(be)
	t.Cleanup(func() { _ = s.Close() })

	s.AllowInsecureAuth = true

	l, err := net.Listen("tcp", "localhost:0")
	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	go func() { _ = s.Serve(l) }()

	return &TestServer{
		Server:  s,
		Address: l.Addr().String(),
		User:    user,
		Inbox:   mailbox,
	}
}

// HostPort splits the listener address.
func (ts *TestServer) HostPort(t *testing.T) (string, int) {
	host, port, err := net.SplitHostPort(ts.Address)
	assert.NoError(t, err)

	var p int
	_, err = fmt.Sscanf(port, "%d", &p)
	assert.NoError(t, err)
	return host, p
}

// Mailbox creates (if needed) and returns a mailbox.
func (ts *TestServer) Mailbox(t *testing.T, name string) *memory.Mailbox {
	mb, err := ts.User.GetMailbox(name)
	if err != nil {
		err = ts.User.CreateMailbox(name)
		assert.NoError(t, err)
		if err != nil {
			t.FailNow()
		}

		mb, err = ts.User.GetMailbox(name)
	}

	assert.NoError(t, err)
	if err != nil {
		t.FailNow()
	}

	return mb.(*memory.Mailbox)
}

// AddMessage appends a raw message to a mailbox.
func AddMessage(mailbox *memory.Mailbox, raw string) {
	uid := uint32(len(mailbox.Messages) + 1)
	mailbox.Messages = append(mailbox.Messages, &memory.Message{
		Uid:   uid,
		Date:  time.Date(2016, 5, 11, 14, 31, 59, 0, time.UTC),
		Size:  uint32(len(raw)),
		Flags: []string{},
		Body:  []byte(raw),
	})
}

type TestMessage struct {
	MessageID string
	From      string
	To        string
	Subject   string
	Body      string
}

// Plain renders a single-part text/plain message.
func (m TestMessage) Plain() string {
	var sb strings.Builder
	m.writeHeader(&sb)
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(m.Body)
	return sb.String()
}

// WithAttachment renders a multipart/mixed message with the body, an HTML
// alternative and one attachment.
func (m TestMessage) WithAttachment(fileName, contentType, data string) string {
	var sb strings.Builder
	m.writeHeader(&sb)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: multipart/mixed; boundary=outer\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("--outer\r\n")
	sb.WriteString("Content-Type: multipart/alternative; boundary=inner\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("--inner\r\n")
	sb.WriteString("Content-Type: text/plain\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(m.Body + "\r\n")
	sb.WriteString("--inner\r\n")
	sb.WriteString("Content-Type: text/html\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("<p>" + m.Body + "</p>\r\n")
	sb.WriteString("--inner--\r\n")
	sb.WriteString("--outer\r\n")
	sb.WriteString("Content-Type: " + contentType + "\r\n")
	sb.WriteString("Content-Disposition: attachment; filename=\"" + fileName + "\"\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(data + "\r\n")
	sb.WriteString("--outer--\r\n")
	return sb.String()
}

func (m TestMessage) writeHeader(sb *strings.Builder) {
	from := m.From
	if from == "" {
		from = "from@example.com"
	}

	to := m.To
	if to == "" {
		to = "to@example.com"
	}

	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + m.Subject + "\r\n")
	sb.WriteString("Date: Wed, 11 May 2016 14:31:59 +0000\r\n")
	sb.WriteString("Message-ID: " + m.MessageID + "\r\n")
}
