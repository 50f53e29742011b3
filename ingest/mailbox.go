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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/emersion/go-imap/client"
	log "github.com/sirupsen/logrus"
)

var errSinkClosed = errors.New("sink closed")

// DialMailbox connects and logs in to the destination server.
func DialMailbox(cfg *MailboxConfig) (*MailboxSink, error) {
	var c *client.Client
	var err error
	if cfg.TLS {
		c, err = client.DialTLS(cfg.HostPort, cfg.TLSConfig)
	} else {
		c, err = client.Dial(cfg.HostPort)
	}

	if err != nil {
		return nil, err
	}

	if cfg.Debug {
		c.SetDebug(os.Stderr)
	}

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		_ = c.Logout()
		return nil, err
	}

	return NewMailboxSink(c, cfg.Mailbox), nil
}

func NewMailboxSink(c Appender, mbox string) *MailboxSink {
	sink := &MailboxSink{
		client:   c,
		incoming: make(chan request),
		mbox:     mbox,
		hasQuit:  make(chan struct{}),
		wantQuit: make(chan struct{}),
	}

	go sink.run()
	return sink
}

func (sink *MailboxSink) isShutdown() bool {
	return atomic.LoadInt32(&sink.shutdown) != 0
}

func (sink *MailboxSink) Ingest(id, _, _ string, doc *Document) error {
	log.WithField("id", id).Trace("ingest_message")
	if sink.isShutdown() {
		return errSinkClosed
	}

	body, err := io.ReadAll(doc.Binary)
	if err != nil {
		return fmt.Errorf("read %v: %w", id, err)
	}

	ch := make(chan error, 1)
	select {
	case sink.incoming <- request{ID: id, Date: documentDate(doc), Body: bytes.NewBuffer(body), ch: ch}:
	case <-sink.hasQuit:
		return errSinkClosed
	}

	return <-ch
}

func documentDate(doc *Document) time.Time {
	for _, v := range doc.Fields["date"] {
		if t, err := time.Parse(time.UnixDate, v); err == nil {
			return t
		}
	}
	return time.Now()
}

func (sink *MailboxSink) run() {
	for {
		select {
		case <-sink.wantQuit:
			goto done
		case req := <-sink.incoming:
			log.WithField("id", req.ID).Trace("ingest_start")
			err := sink.client.Append(sink.mbox, nil, req.Date, req.Body)
			if err != nil {
				log.WithError(err).WithField("id", req.ID).Error("ingest_failed")
			} else {
				log.WithField("id", req.ID).Info("ingest_success")
			}
			req.ch <- err
		}
	}
done:
	atomic.StoreInt32(&sink.shutdown, 1)
	drain(sink.incoming)
	if err := sink.client.Logout(); err != nil {
		log.WithError(err).Error("ingest_client_close_failed")
	}

	close(sink.hasQuit)
}

func drain(ch chan request) {
	count := 0
	for {
		select {
		case req := <-ch:
			req.ch <- errSinkClosed
			count++
		default:
			goto done
		}
	}
done:
	log.WithField("count", count).Trace("ingest_drained_requests")
}

func (sink *MailboxSink) Closed() <-chan struct{} {
	return sink.hasQuit
}

func (sink *MailboxSink) Close() {
	close(sink.wantQuit)
	<-sink.hasQuit
}
