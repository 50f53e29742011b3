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

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
)

func TestProviderFor(t *testing.T) {
	for _, p := range []Protocol{ProtocolPOP3, ProtocolPOP3S, ProtocolIMAP, ProtocolIMAPS} {
		name, ok := ProviderFor(p)
		assert.True(t, ok)
		assert.Equal(t, string(p), name)
	}

	name, ok := ProviderFor("IMAPS")
	assert.True(t, ok)
	assert.Equal(t, "imaps", name)

	_, ok = ProviderFor("smtp")
	assert.False(t, ok)
}

func TestParseProtocol(t *testing.T) {
	p, ok := ParseProtocol(" Pop3S ")
	assert.True(t, ok)
	assert.Equal(t, ProtocolPOP3S, p)
	assert.True(t, p.TLS())
	assert.False(t, p.IsIMAP())
	assert.Equal(t, 995, DefaultPort(p))

	_, ok = ParseProtocol("graph")
	assert.False(t, ok)
}

func TestErrorClassification(t *testing.T) {
	base := errors.New("boom")

	connErr := fmt.Errorf("wrapped: %w", &ConnectionError{Op: "login", Err: base})
	assert.True(t, IsTemporary(connErr))
	assert.ErrorIs(t, connErr, base)
	assert.Contains(t, connErr.Error(), "connection error: login: boom")

	repoErr := &RepositoryError{Op: "select", Err: base}
	assert.False(t, IsTemporary(repoErr))
	assert.ErrorIs(t, repoErr, base)

	assert.True(t, IsCancelled(fmt.Errorf("read: %w", ErrCancelled)))
	assert.True(t, IsCancelled(context.Canceled))
	assert.False(t, IsCancelled(repoErr))
}

func TestEnvelopeFromHeader(t *testing.T) {
	hdr := message.Header{}
	hdr.Add("From", "Alice Example <alice@example.com>")
	hdr.Add("To", "bob@example.com, \"Carol\" <carol@example.com>")
	hdr.Add("Subject", "=?UTF-8?Q?Caf=C3=A9?=")
	hdr.Add("Date", "Wed, 11 May 2016 14:31:59 +0000")
	hdr.Add("Message-ID", "<01@localhost>")

	env := EnvelopeFromHeader(mail.Header{Header: hdr})
	assert.Equal(t, "<01@localhost>", env.MessageID)
	assert.Equal(t, "Café", env.Subject)
	assert.Equal(t, []string{"Alice Example <alice@example.com>"}, FormatAddresses(env.From))
	assert.Equal(t, []string{"bob@example.com", "Carol <carol@example.com>"}, FormatAddresses(env.To))
	assert.Equal(t, 2016, env.Date.Year())
}

func TestFormatAddress(t *testing.T) {
	assert.Equal(t, "", FormatAddress(nil))
	assert.Equal(t, "a@b.c", FormatAddress(&mail.Address{Address: "a@b.c"}))
	assert.Equal(t, "A <a@b.c>", FormatAddress(&mail.Address{Name: "A", Address: "a@b.c"}))
	assert.Equal(t, "Jo O'Neil <jo@b.c>", FormatAddress(&mail.Address{Name: "Jo O'Neil", Address: "jo@b.c"}))
	assert.Equal(t, "\"Smith, John\" <j@b.c>", FormatAddress(&mail.Address{Name: "Smith, John", Address: "j@b.c"}))
	assert.Equal(t, "\"J. Smith\" <j@b.c>", FormatAddress(&mail.Address{Name: "J. Smith", Address: "j@b.c"}))
	assert.True(t, strings.HasPrefix(FormatAddress(&mail.Address{Name: "André", Address: "a@b.c"}), "=?utf-8?"))
}
