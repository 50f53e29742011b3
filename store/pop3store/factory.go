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
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/knadh/go-pop3"
	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/store"
)

const defaultDialTimeout = 30 * time.Second

func dial(opt pop3.Opt) (Conn, error) {
	c, err := pop3.New(opt).NewConn()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (f *Factory) NewStore(cfg *store.Config) (store.Store, error) {
	if cfg.Protocol != store.ProtocolPOP3 && cfg.Protocol != store.ProtocolPOP3S {
		return nil, fmt.Errorf("protocol %v not supported by pop3 provider", cfg.Protocol)
	}

	timeout, err := dialTimeout(cfg)
	if err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = store.DefaultPort(cfg.Protocol)
	}

	d := f.Dial
	if d == nil {
		d = dial
	}

	c, err := d(pop3.Opt{
		Host:          cfg.Host,
		Port:          port,
		DialTimeout:   timeout,
		TLSEnabled:    cfg.Protocol.TLS(),
		TLSSkipVerify: skipVerify(cfg),
	})
	if err != nil {
		return nil, err
	}

	wantCleanup := true
	defer func() {
		if wantCleanup {
			_ = c.Quit()
		}
	}()

	if err := c.Auth(cfg.Username, cfg.Password); err != nil {
		return nil, err
	}

	wantCleanup = false
	return newStore(c, net.JoinHostPort(cfg.Host, strconv.Itoa(port)), cfg.Protocol), nil
}

func dialTimeout(cfg *store.Config) (time.Duration, error) {
	s, ok := cfg.Properties[store.PropertyDialTimeout]
	if !ok || s == "" {
		return defaultDialTimeout, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %v property: %w", store.PropertyDialTimeout, err)
	}
	return d, nil
}

func skipVerify(cfg *store.Config) bool {
	if cfg.TLSConfig != nil {
		return cfg.TLSConfig.InsecureSkipVerify
	}

	skip, _ := strconv.ParseBool(cfg.Properties[store.PropertyTLSSkipVerify])
	return skip
}

func newStore(c Conn, hostPort string, protocol store.Protocol) *pop3Store {
	u := url.URL{Scheme: string(protocol), Host: hostPort}
	return &pop3Store{
		c:      c,
		logger: log.WithField("url", u.String()),
		gone:   make(chan struct{}),
	}
}
