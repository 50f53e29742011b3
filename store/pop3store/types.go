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
	"sync"

	"github.com/emersion/go-message"
	"github.com/knadh/go-pop3"
	log "github.com/sirupsen/logrus"
)

// Conn is the subset of *pop3.Conn the store uses.
type Conn interface {
	Auth(user, password string) error
	List(msgID int) ([]pop3.MessageID, error)
	Top(msgID int, numLines int) (*message.Entity, error)
	RetrRaw(msgID int) (*bytes.Buffer, error)
	Noop() error
	Quit() error
}

// Dialer opens an unauthenticated connection.
type Dialer func(opt pop3.Opt) (Conn, error)

type Factory struct {
	// Dial overrides how connections are opened. Nil uses go-pop3.
	Dial Dialer
}

type pop3Store struct {
	c      Conn
	logger *log.Entry

	gone     chan struct{}
	goneOnce sync.Once
}

type folder struct {
	s    *pop3Store
	name string
	open bool

	// cache holds what has been read of each message, by message number,
	// while the folder is open.
	cache map[int]*matchable
}
