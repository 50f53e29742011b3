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
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type testMessage struct {
	id      string
	subject string
	from    []string
	to      []string
	body    string
}

func (m *testMessage) MessageID() string { return m.id }
func (m *testMessage) Subject() string   { return m.subject }
func (m *testMessage) From() []string    { return m.from }
func (m *testMessage) To() []string      { return m.to }
func (m *testMessage) BodyText() string  { return m.body }

func TestCompile(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, MatchAll, Compile(nil))
		assert.True(t, IsMatchAll(Compile([]Filter{})))
	})

	t.Run("only_unknown", func(t *testing.T) {
		p := Compile([]Filter{{Name: "cc", Value: "x"}, {Name: "bogus", Value: "y"}})
		assert.Equal(t, MatchAll, p)
	})

	t.Run("folder_ignored", func(t *testing.T) {
		p := Compile([]Filter{{Name: "folder", Value: "INBOX"}})
		assert.Equal(t, MatchAll, p)
	})

	t.Run("padded_names", func(t *testing.T) {
		hook := test.NewGlobal()
		defer hook.Reset()

		p := Compile([]Filter{{Name: " Folder ", Value: "INBOX"}, {Name: "subject ", Value: "invoice"}})
		assert.Equal(t, Term{Field: FieldSubject, Value: "invoice"}, p)

		for _, e := range hook.AllEntries() {
			assert.NotEqual(t, "query_unknown_filter", e.Message)
		}
	})

	t.Run("single", func(t *testing.T) {
		p := Compile([]Filter{{Name: "Subject", Value: "invoice"}})
		assert.Equal(t, Term{Field: FieldSubject, Value: "invoice"}, p)
	})

	t.Run("conjunction_in_order", func(t *testing.T) {
		p := Compile([]Filter{
			{Name: "FROM", Value: "alice"},
			{Name: "unknown", Value: "dropped"},
			{Name: "subject", Value: "invoice"},
			{Name: "folder", Value: "INBOX"},
			{Name: "to", Value: "bob"},
			{Name: "body", Value: "total"},
		})

		assert.Equal(t, And{
			Left: And{
				Left: And{
					Left:  Term{Field: FieldFrom, Value: "alice"},
					Right: Term{Field: FieldSubject, Value: "invoice"},
				},
				Right: Term{Field: FieldTo, Value: "bob"},
			},
			Right: Term{Field: FieldBody, Value: "total"},
		}, p)

		assert.Equal(t, []Term{
			{Field: FieldFrom, Value: "alice"},
			{Field: FieldSubject, Value: "invoice"},
			{Field: FieldTo, Value: "bob"},
			{Field: FieldBody, Value: "total"},
		}, Terms(p))
		assert.True(t, NeedsBody(p))
	})

	t.Run("duplicates_kept", func(t *testing.T) {
		p := Compile([]Filter{{Name: "subject", Value: "a"}, {Name: "subject", Value: "b"}})
		assert.Len(t, Terms(p), 2)
		assert.False(t, NeedsBody(p))
	})
}

func TestMatch(t *testing.T) {
	msg := &testMessage{
		id:      "<2@example.com>",
		subject: "Your Invoice for May",
		from:    []string{"Alice <alice@example.com>"},
		to:      []string{"bob@example.com", "carol@example.com"},
		body:    "Total due: 42",
	}

	assert.True(t, Match(MatchAll, msg))
	assert.True(t, Match(nil, msg))
	assert.True(t, Match(Compile([]Filter{{Name: "subject", Value: "invoice"}}), msg))
	assert.True(t, Match(Compile([]Filter{{Name: "to", Value: "CAROL"}}), msg))
	assert.True(t, Match(Compile([]Filter{
		{Name: "from", Value: "alice"},
		{Name: "body", Value: "total due"},
	}), msg))
	assert.False(t, Match(Compile([]Filter{
		{Name: "from", Value: "alice"},
		{Name: "body", Value: "refund"},
	}), msg))

	assert.True(t, Match(MessageID("<2@example.com>"), msg))
	assert.False(t, Match(MessageID("<2@example.co>"), msg))
	assert.False(t, Match(MessageID("2@example.com"), msg))
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "subject", FieldSubject.String())
	assert.Equal(t, "message-id", FieldMessageID.String())
	assert.Equal(t, "unknown", Field(99).String())
}
