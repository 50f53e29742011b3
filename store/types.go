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

package store

//go:generate mockgen -destination=mock_store/mock_store.go -package=mock_store . Store,Folder,Factory

import (
	"crypto/tls"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/vs49688/mailcrawl/query"
)

type Protocol string

const (
	ProtocolPOP3  Protocol = "pop3"
	ProtocolPOP3S Protocol = "pop3s"
	ProtocolIMAP  Protocol = "imap"
	ProtocolIMAPS Protocol = "imaps"
)

// InboxName is the only folder a POP3 store has.
const InboxName = "INBOX"

// IsIMAP reports whether the protocol has named folders.
func (p Protocol) IsIMAP() bool {
	return p == ProtocolIMAP || p == ProtocolIMAPS
}

// TLS reports whether the protocol is the implicit-TLS variant.
func (p Protocol) TLS() bool {
	return p == ProtocolIMAPS || p == ProtocolPOP3S
}

// Well-known keys of Config.Properties.
const (
	PropertyAuthMethod    = "auth-method"
	PropertyDialTimeout   = "dial-timeout"
	PropertyTLSSkipVerify = "tls-skip-verify"
)

type Config struct {
	Host       string
	Port       int
	Protocol   Protocol
	Username   string
	Password   string
	Properties map[string]string
	TLSConfig  *tls.Config
	Debug      bool
}

// Envelope is the header-level summary of a message.
type Envelope struct {
	MessageID string
	Subject   string
	From      []*mail.Address
	To        []*mail.Address
	Date      time.Time
}

// Message is a search result. Ref is the provider's handle for the
// message within the open folder (a sequence number for IMAP, a message
// number for POP3). Size is the size declared by the server, or zero.
type Message struct {
	Ref      uint32
	Size     int64
	Envelope Envelope
}

type Folder interface {
	Name() string

	Open(readOnly bool) error

	Close() error

	// Search returns the messages matching p, in the store's order.
	Search(p query.Predicate) ([]*Message, error)

	// Content returns the raw RFC822 bytes of msg.
	Content(msg *Message) (io.ReadCloser, error)
}

// FolderInfo describes a folder as returned by Store.ListFolders.
type FolderInfo struct {
	Name         string
	HoldsMessage bool
}

type Store interface {
	// DefaultFolder returns the root folder, verifying the server can
	// produce it.
	DefaultFolder() (Folder, error)

	// Folder returns an unopened handle for the named folder.
	Folder(name string) (Folder, error)

	// ListFolders lists every folder under the root, recursively.
	ListFolders() ([]FolderInfo, error)

	// LoggedOut is closed when the underlying connection is gone. May be nil
	// if the provider cannot tell.
	LoggedOut() <-chan struct{}

	Close() error
}

type Factory interface {
	NewStore(cfg *Config) (Store, error)
}
