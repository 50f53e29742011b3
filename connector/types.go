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

package connector

import (
	"github.com/vs49688/mailcrawl/query"
	"github.com/vs49688/mailcrawl/session"
	"github.com/vs49688/mailcrawl/store"
)

const (
	// VersionToken is reported for every document. Messages are never
	// diffed, so every crawl reprocesses everything it is handed.
	VersionToken = "1.0"

	// MaxDocumentRequest is the largest batch ProcessDocuments should be given.
	MaxDocumentRequest = 50

	ActivityFetch     = "fetch"
	RelationshipChild = "child"

	// StatusWorking is what Check reports for a healthy connection.
	StatusWorking = "Connection working"
)

// Metadata field names, as requested in a JobSpec and as keyed in the
// ingested document.
const (
	FieldTo                 = "to"
	FieldFrom               = "from"
	FieldSubject            = "subject"
	FieldBody               = "body"
	FieldDate               = "date"
	FieldAttachmentEncoding = "attachment-encoding"
	FieldAttachmentMimeType = "attachment-mimetype"
)

// JobSpec selects what a crawl looks at and what it extracts.
type JobSpec struct {
	// Filters are (name, value) search terms. The entry named "folder"
	// selects the folder instead.
	Filters []query.Filter `json:"filters" yaml:"filters"`

	// Metadata lists the fields to extract from each message.
	Metadata []string `json:"metadata" yaml:"metadata"`
}

type Connector struct {
	factory store.Factory
	opts    []session.Option

	cfg      *store.Config
	sessions *session.Manager
}
