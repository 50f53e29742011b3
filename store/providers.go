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
)

// providerNames maps each protocol onto the provider implementing it.
// Never modified after initialisation.
var providerNames = map[Protocol]string{
	ProtocolPOP3:  "pop3",
	ProtocolPOP3S: "pop3s",
	ProtocolIMAP:  "imap",
	ProtocolIMAPS: "imaps",
}

// ProviderFor returns the provider name for a protocol.
func ProviderFor(p Protocol) (string, bool) {
	name, ok := providerNames[Protocol(strings.ToLower(string(p)))]
	return name, ok
}

// ParseProtocol validates a protocol string.
func ParseProtocol(s string) (Protocol, bool) {
	p := Protocol(strings.ToLower(strings.TrimSpace(s)))
	_, ok := providerNames[p]
	return p, ok
}

// DefaultPort returns the well-known port of a protocol.
func DefaultPort(p Protocol) int {
	switch p {
	case ProtocolPOP3:
		return 110
	case ProtocolPOP3S:
		return 995
	case ProtocolIMAP:
		return 143
	case ProtocolIMAPS:
		return 993
	default:
		return 0
	}
}
