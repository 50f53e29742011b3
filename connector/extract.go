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
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/ingest"
	"github.com/vs49688/mailcrawl/parts"
	"github.com/vs49688/mailcrawl/query"
	"github.com/vs49688/mailcrawl/store"
)

var metadataAliases = map[string]string{
	FieldTo:                 FieldTo,
	FieldFrom:               FieldFrom,
	FieldSubject:            FieldSubject,
	FieldBody:               FieldBody,
	FieldDate:               FieldDate,
	FieldAttachmentEncoding: FieldAttachmentEncoding,
	FieldAttachmentMimeType: FieldAttachmentMimeType,
	"encoding":              FieldAttachmentEncoding,
	"mimetype":              FieldAttachmentMimeType,
}

// requestedFields canonicalises the metadata names, dropping unknown
// names and duplicates.
func requestedFields(names []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(names))
	for _, name := range names {
		field, ok := metadataAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			log.WithField("name", name).Warn("metadata_unknown_field")
			continue
		}

		if seen[field] {
			continue
		}
		seen[field] = true
		out = append(out, field)
	}
	return out
}

// ProcessDocuments extracts each identified message and hands it to ing.
// Identifiers that no longer resolve to a message are skipped.
func (c *Connector) ProcessDocuments(ctx context.Context, ids []string, versions []string, spec *JobSpec, ing ingest.Ingester) error {
	name, ok := spec.Folder()
	if !ok {
		log.Debug("extract_no_folder")
		return nil
	}

	fields := requestedFields(spec.Metadata)

	s, err := c.store()
	if err != nil {
		return err
	}

	f, err := c.openFolder(s, name)
	if err != nil {
		return err
	}
	defer closeFolder(f)

	for i, id := range ids {
		if ctx.Err() != nil {
			return fmt.Errorf("extract %v: %w", id, store.ErrCancelled)
		}

		version := VersionToken
		if i < len(versions) {
			version = versions[i]
		}

		logger := log.WithFields(log.Fields{"id": id, "folder": name})
		logger.Debug("extract_start")

		msgs, err := f.Search(query.MessageID(id))
		if err != nil {
			return &store.RepositoryError{Op: "search " + id, Err: err}
		}

		if len(msgs) == 0 {
			logger.Info("extract_message_vanished")
			continue
		}

		for _, msg := range msgs {
			doc, uri, err := extract(ctx, f, msg, id, fields)
			if err != nil {
				return err
			}

			if err := ing.Ingest(id, version, uri, doc); err != nil {
				return fmt.Errorf("ingest %v: %w", id, err)
			}
		}

		logger.Debug("extract_done")
	}

	return nil
}

func extract(ctx context.Context, f store.Folder, msg *store.Message, id string, fields []string) (*ingest.Document, string, error) {
	rc, err := f.Content(msg)
	if err != nil {
		return nil, "", &store.RepositoryError{Op: "fetch " + id, Err: err}
	}
	defer rc.Close()

	raw, err := readAll(ctx, rc)
	if err != nil {
		if store.IsCancelled(err) {
			return nil, "", fmt.Errorf("read %v: %w", id, err)
		}
		return nil, "", &store.RepositoryError{Op: "read " + id, Err: err}
	}

	parse := parts.ParseHeader
	if needsParts(fields) {
		parse = parts.Parse
	}

	root, err := parse(bytes.NewReader(raw))
	if err != nil {
		return nil, "", &store.RepositoryError{Op: "parse " + id, Err: err}
	}

	length := msg.Size
	if length <= 0 {
		length = int64(len(raw))
	}

	doc := &ingest.Document{
		Binary:   bytes.NewReader(raw),
		Length:   length,
		FileName: root.FileName,
		Fields:   map[string][]string{},
	}

	var subject string
	env := msg.Envelope
	for _, field := range fields {
		switch field {
		case FieldTo:
			addField(doc, FieldTo, store.FormatAddresses(env.To)...)
		case FieldFrom:
			addField(doc, FieldFrom, store.FormatAddresses(env.From)...)
		case FieldSubject:
			subject = env.Subject
			addField(doc, FieldSubject, subject)
		case FieldBody:
			for _, b := range parts.Bodies(root) {
				addField(doc, FieldBody, string(b.Content))
			}
		case FieldDate:
			if !env.Date.IsZero() {
				addField(doc, FieldDate, env.Date.Format(time.UnixDate))
			}
		case FieldAttachmentEncoding:
			for _, a := range parts.Attachments(root) {
				addField(doc, FieldAttachmentEncoding, attachmentEncoding(a.FileName))
			}
		case FieldAttachmentMimeType:
			for _, a := range parts.Attachments(root) {
				addField(doc, FieldAttachmentMimeType, a.ContentType)
			}
		}
	}

	return doc, subject + id, nil
}

// needsParts reports whether any of fields is read from the part tree
// rather than the envelope.
func needsParts(fields []string) bool {
	for _, field := range fields {
		switch field {
		case FieldBody, FieldAttachmentEncoding, FieldAttachmentMimeType:
			return true
		}
	}
	return false
}

func addField(doc *ingest.Document, name string, values ...string) {
	if len(values) == 0 {
		return
	}
	doc.Fields[name] = append(doc.Fields[name], values...)
}

// attachmentEncoding returns the second '?'-separated segment of a raw
// file name, which is the charset of an RFC 2047 encoded-word. Names that
// are not encoded yield "".
func attachmentEncoding(fileName string) string {
	segments := strings.Split(fileName, "?")
	if len(segments) < 2 {
		return ""
	}
	return segments[1]
}
