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
	"github.com/emersion/go-imap"
	"github.com/emersion/go-sasl"
	log "github.com/sirupsen/logrus"
)

// Client is the subset of *client.Client the store uses.
type Client interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)

	Search(criteria *imap.SearchCriteria) ([]uint32, error)

	Fetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error

	List(ref, name string, ch chan *imap.MailboxInfo) error

	Close() error

	Logout() error

	LoggedOut() <-chan struct{}
}

// Authenticatable is what an Authenticator needs from a connection.
type Authenticatable interface {
	Login(username, password string) error

	Authenticate(auth sasl.Client) error
}

type Authenticator interface {
	Authenticate(c Authenticatable) error
}

type Factory struct{}

type imapStore struct {
	c      Client
	logger *log.Entry
}

type folder struct {
	s      *imapStore
	name   string
	status *imap.MailboxStatus
}
