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

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

var fieldNames = map[string]Field{
	"subject": FieldSubject,
	"from":    FieldFrom,
	"to":      FieldTo,
	"body":    FieldBody,
}

// FilterName canonicalises a filter name for lookup.
func FilterName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsFolder reports whether f is the folder selector.
func (f Filter) IsFolder() bool {
	return FilterName(f.Name) == FolderFilter
}

// Compile turns filter entries into a left-deep conjunction of terms, in
// input order. Unknown names are logged and dropped. The folder selector is
// ignored. With no usable entries the result is MatchAll.
func Compile(filters []Filter) Predicate {
	var p Predicate
	for _, f := range filters {
		if f.IsFolder() {
			continue
		}

		field, ok := fieldNames[FilterName(f.Name)]
		if !ok {
			log.WithFields(log.Fields{
				"name":  f.Name,
				"value": f.Value,
			}).Warn("query_unknown_filter")
			continue
		}

		log.WithFields(log.Fields{
			"field": field,
			"value": f.Value,
		}).Debug("query_add_term")

		t := Term{Field: field, Value: f.Value}
		if p == nil {
			p = t
		} else {
			p = And{Left: p, Right: t}
		}
	}

	if p == nil {
		return MatchAll
	}

	return p
}

// MessageID returns the predicate locating a message by its exact identifier.
func MessageID(id string) Predicate {
	return Term{Field: FieldMessageID, Value: id}
}

// Terms flattens p into its leaves, left to right.
func Terms(p Predicate) []Term {
	switch v := p.(type) {
	case Term:
		return []Term{v}
	case And:
		return append(Terms(v.Left), Terms(v.Right)...)
	default:
		return nil
	}
}

// IsMatchAll reports whether p selects everything.
func IsMatchAll(p Predicate) bool {
	return p == nil || p == MatchAll
}

// NeedsBody reports whether evaluating p requires the message body.
func NeedsBody(p Predicate) bool {
	for _, t := range Terms(p) {
		if t.Field == FieldBody {
			return true
		}
	}

	return false
}

// Match evaluates p against m. Text comparisons are case-insensitive
// substring matches, message identifiers must match exactly.
func Match(p Predicate, m Matchable) bool {
	switch v := p.(type) {
	case nil, matchAll:
		return true
	case And:
		return Match(v.Left, m) && Match(v.Right, m)
	case Term:
		switch v.Field {
		case FieldSubject:
			return contains(m.Subject(), v.Value)
		case FieldFrom:
			return anyContains(m.From(), v.Value)
		case FieldTo:
			return anyContains(m.To(), v.Value)
		case FieldBody:
			return contains(m.BodyText(), v.Value)
		case FieldMessageID:
			return m.MessageID() == v.Value
		}
	}

	return false
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContains(ss []string, substr string) bool {
	for _, s := range ss {
		if contains(s, substr) {
			return true
		}
	}

	return false
}
