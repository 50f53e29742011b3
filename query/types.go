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

package query

// FolderFilter is the reserved filter name that selects the target
// folder rather than contributing a search term.
const FolderFilter = "folder"

type Field int

const (
	FieldSubject Field = iota
	FieldFrom
	FieldTo
	FieldBody
	FieldMessageID
)

func (f Field) String() string {
	switch f {
	case FieldSubject:
		return "subject"
	case FieldFrom:
		return "from"
	case FieldTo:
		return "to"
	case FieldBody:
		return "body"
	case FieldMessageID:
		return "message-id"
	default:
		return "unknown"
	}
}

// Filter is a single (name, value) entry from a job specification.
type Filter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Predicate is a search condition tree. The only implementations are
// Term, And and MatchAll.
type Predicate interface {
	predicate()
}

// Term is a leaf predicate: Field contains (or, for FieldMessageID, equals) Value.
type Term struct {
	Field Field
	Value string
}

// And is the conjunction of two predicates.
type And struct {
	Left  Predicate
	Right Predicate
}

type matchAll struct{}

// MatchAll selects every message in a folder.
var MatchAll Predicate = matchAll{}

func (Term) predicate()     {}
func (And) predicate()      {}
func (matchAll) predicate() {}

// Matchable is what Match needs to evaluate a predicate without help from
// the server.
type Matchable interface {
	MessageID() string
	Subject() string
	From() []string
	To() []string
	// BodyText returns the concatenated text of the message body parts.
	BodyText() string
}
