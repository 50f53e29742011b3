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

// Package provider resolves a protocol to the store implementation serving it.
package provider

import (
	"fmt"
	"strings"

	"github.com/vs49688/mailcrawl/store"
	"github.com/vs49688/mailcrawl/store/imapstore"
	"github.com/vs49688/mailcrawl/store/pop3store"
)

type Factory struct {
	providers map[string]store.Factory
}

type Option func(*Factory)

// WithProvider registers (or replaces) the factory for a provider name.
func WithProvider(name string, f store.Factory) Option {
	return func(p *Factory) {
		p.providers[strings.ToLower(name)] = f
	}
}

func New(opts ...Option) *Factory {
	imap := &imapstore.Factory{}
	pop3 := &pop3store.Factory{}

	f := &Factory{providers: map[string]store.Factory{
		"imap":  imap,
		"imaps": imap,
		"pop3":  pop3,
		"pop3s": pop3,
	}}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) NewStore(cfg *store.Config) (store.Store, error) {
	protocol, ok := store.ParseProtocol(string(cfg.Protocol))
	if !ok {
		return nil, fmt.Errorf("unsupported protocol: %v", cfg.Protocol)
	}

	name, ok := store.ProviderFor(protocol)
	if !ok {
		return nil, fmt.Errorf("no provider for protocol: %v", protocol)
	}

	impl, ok := f.providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %v not registered", name)
	}

	c := *cfg
	c.Protocol = protocol
	return impl.NewStore(&c)
}
