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

package session

import (
	"time"

	"github.com/vs49688/mailcrawl/store"
)

// DefaultTTL is how long an idle session stays usable.
const DefaultTTL = 5 * time.Minute

// Clock returns the current time.
type Clock func() time.Time

// Manager owns at most one open store at a time and reopens it lazily.
// It is not safe for concurrent use.
type Manager struct {
	cfg     *store.Config
	factory store.Factory
	ttl     time.Duration
	now     Clock
	logURL  string

	store  store.Store
	expiry time.Time
}

type Option func(*Manager)
