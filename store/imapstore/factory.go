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
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/charset"
	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/store"
)

func init() {
	// Envelope subjects and names are decoded through this.
	imap.CharsetReader = charset.Reader
}

func (f *Factory) NewStore(cfg *store.Config) (store.Store, error) {
	if !cfg.Protocol.IsIMAP() {
		return nil, fmt.Errorf("protocol %v not supported by imap provider", cfg.Protocol)
	}

	auth, err := authenticatorFor(cfg)
	if err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = store.DefaultPort(cfg.Protocol)
	}
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(port))

	var c *client.Client
	if cfg.Protocol.TLS() {
		c, err = client.DialTLS(hostPort, tlsConfig(cfg))
	} else {
		c, err = client.Dial(hostPort)
	}

	if err != nil {
		return nil, err
	}

	wantCleanup := true
	defer func() {
		if wantCleanup {
			_ = c.Logout()
		}
	}()

	if cfg.Debug {
		c.SetDebug(os.Stderr)
	}

	if err := auth.Authenticate(c); err != nil {
		return nil, err
	}

	wantCleanup = false
	return newStore(c, hostPort, cfg.Protocol), nil
}

func tlsConfig(cfg *store.Config) *tls.Config {
	if cfg.TLSConfig != nil {
		return cfg.TLSConfig
	}

	if skip, _ := strconv.ParseBool(cfg.Properties[store.PropertyTLSSkipVerify]); skip {
		// #nosec G402
		return &tls.Config{InsecureSkipVerify: true}
	}

	return nil
}

func newStore(c Client, hostPort string, protocol store.Protocol) *imapStore {
	u := url.URL{Scheme: string(protocol), Host: hostPort}
	return &imapStore{
		c:      c,
		logger: log.WithField("url", u.String()),
	}
}
