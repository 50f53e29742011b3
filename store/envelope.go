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
	"strings"

	"github.com/emersion/go-message/mail"
)

// EnvelopeFromHeader builds an Envelope from a parsed message header.
// The Message-ID is kept verbatim, angle brackets included, so that it
// compares equal to what an IMAP server reports.
func EnvelopeFromHeader(h mail.Header) Envelope {
	env := Envelope{
		MessageID: strings.TrimSpace(h.Get("Message-Id")),
	}

	if subject, err := h.Subject(); err == nil {
		env.Subject = subject
	} else {
		env.Subject = h.Get("Subject")
	}

	env.From, _ = h.AddressList("From")
	env.To, _ = h.AddressList("To")
	env.Date, _ = h.Date()
	return env
}

// FormatAddress renders an address for display: the bare address, or
// Name <user@host> when a name is present. Names that are not a plain
// phrase are quoted or encoded.
func FormatAddress(a *mail.Address) string {
	if a == nil {
		return ""
	}

	if a.Name == "" {
		return a.Address
	}

	if isPhrase(a.Name) {
		return a.Name + " <" + a.Address + ">"
	}

	return a.String()
}

// isPhrase reports whether name is a run of atoms separated by single
// spaces, which needs no quoting in a header.
func isPhrase(name string) bool {
	if name == "" || strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") || strings.Contains(name, "  ") {
		return false
	}

	for _, r := range name {
		switch {
		case r == ' ':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("!#$%&'*+-/=?^_`{|}~", r):
		default:
			return false
		}
	}
	return true
}

// FormatAddresses applies FormatAddress to a list.
func FormatAddresses(list []*mail.Address) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, FormatAddress(a))
	}
	return out
}
