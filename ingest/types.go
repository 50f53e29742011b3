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

package ingest

import (
	"crypto/tls"
	"io"
	"time"

	"github.com/emersion/go-imap"
)

// Document is an extracted message ready for indexing.
type Document struct {
	Binary   io.Reader
	Length   int64
	FileName string
	Fields   map[string][]string
}

// Ingester receives extracted documents.
type Ingester interface {
	Ingest(id, version, uri string, doc *Document) error
}

// IngesterFunc adapts a function to the Ingester interface.
type IngesterFunc func(id, version, uri string, doc *Document) error

func (f IngesterFunc) Ingest(id, version, uri string, doc *Document) error {
	return f(id, version, uri, doc)
}

// Record is the serialised form of an ingested document.
type Record struct {
	ID       string              `json:"id"`
	Version  string              `json:"version"`
	URI      string              `json:"uri"`
	FileName string              `json:"file_name,omitempty"`
	Length   int64               `json:"length"`
	Fields   map[string][]string `json:"fields,omitempty"`
	Content  []byte              `json:"content,omitempty"`
}

// Appender is the subset of *client.Client the mailbox sink uses.
type Appender interface {
	Append(mbox string, flags []string, date time.Time, msg imap.Literal) error

	Logout() error
}

type MailboxConfig struct {
	HostPort  string
	Username  string
	Password  string
	Mailbox   string
	TLS       bool
	TLSConfig *tls.Config
	Debug     bool
}

type request struct {
	ID   string
	Date time.Time
	Body imap.Literal
	ch   chan<- error
}

// MailboxSink appends every ingested message to an IMAP mailbox.
type MailboxSink struct {
	client   Appender
	incoming chan request
	mbox     string
	hasQuit  chan struct{}
	wantQuit chan struct{}
	shutdown int32
}

type tee []Ingester
