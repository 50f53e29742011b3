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

// Package parts parses a message into a typed tree of MIME parts.
//
// Leaves carry their decoded content, media type and disposition; internal
// nodes (multipart entities) carry their children in document order.
package parts

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	log "github.com/sirupsen/logrus"
)

type Disposition int

const (
	DispositionNone Disposition = iota
	DispositionInline
	DispositionAttachment
)

func (d Disposition) String() string {
	switch d {
	case DispositionInline:
		return "inline"
	case DispositionAttachment:
		return "attachment"
	default:
		return "none"
	}
}

// IsAttachment is true for attachment and inline parts, the parts that are
// not primary body content.
func (d Disposition) IsAttachment() bool {
	return d == DispositionInline || d == DispositionAttachment
}

func parseDisposition(s string) Disposition {
	switch strings.ToLower(s) {
	case "attachment":
		return DispositionAttachment
	case "inline":
		return DispositionInline
	default:
		return DispositionNone
	}
}

type Part struct {
	// MediaType is the lower-cased type/subtype, e.g. "text/plain".
	MediaType string
	// ContentType is the Content-Type header as declared.
	ContentType string
	Disposition Disposition
	// FileName is the declared file name, not RFC 2047 decoded.
	FileName string
	Content  []byte
	Children []*Part
	Header   message.Header
}

func (p *Part) IsLeaf() bool {
	return len(p.Children) == 0 && !strings.HasPrefix(p.MediaType, "multipart/")
}

func readEntity(r io.Reader) (*message.Entity, error) {
	e, err := message.Read(r)
	if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	return e, nil
}

// Parse reads a full RFC822 message.
func Parse(r io.Reader) (*Part, error) {
	e, err := readEntity(r)
	if err != nil {
		return nil, err
	}

	return build(e)
}

// ParseHeader reads only the top-level header of a message. The returned
// part has no content or children.
func ParseHeader(r io.Reader) (*Part, error) {
	e, err := readEntity(r)
	if err != nil {
		return nil, err
	}

	return describe(e), nil
}

// rawParams splits a header value into its token and parameters without
// decoding encoded-words, unlike message.Header.ContentDisposition.
func rawParams(v string) (string, map[string]string) {
	if v == "" {
		return "", nil
	}

	token, params, err := mime.ParseMediaType(v)
	if err != nil {
		token = strings.TrimSpace(strings.SplitN(v, ";", 2)[0])
	}
	return token, params
}

func describe(e *message.Entity) *Part {
	mediaType, _, _ := e.Header.ContentType()
	disp, dispParams := rawParams(e.Header.Get("Content-Disposition"))

	p := &Part{
		MediaType:   strings.ToLower(mediaType),
		ContentType: e.Header.Get("Content-Type"),
		Disposition: parseDisposition(disp),
		FileName:    dispParams["filename"],
		Header:      e.Header,
	}

	if p.FileName == "" {
		_, params := rawParams(p.ContentType)
		p.FileName = params["name"]
	}

	if p.MediaType == "" {
		p.MediaType = "text/plain"
	}

	return p
}

func build(e *message.Entity) (*Part, error) {
	p := describe(e)

	mr := e.MultipartReader()
	if mr == nil {
		b, err := io.ReadAll(e.Body)
		if err != nil {
			log.WithFields(log.Fields{
				"media_type": p.MediaType,
				"file_name":  p.FileName,
			}).WithError(err).Warn("part_decode_failed")
			return p, nil
		}
		p.Content = b
		return p, nil
	}

	for {
		child, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
			return nil, fmt.Errorf("read %v part: %w", p.MediaType, err)
		}

		c, err := build(child)
		if err != nil {
			return nil, err
		}
		p.Children = append(p.Children, c)
	}

	return p, nil
}

// Leaves returns the leaf parts of the tree rooted at p in document order.
func Leaves(p *Part) []*Part {
	var out []*Part
	_ = Walk(p, func(leaf *Part) error {
		out = append(out, leaf)
		return nil
	})
	return out
}

// Walk calls fn on every leaf of the tree, depth first. It stops at the
// first error fn returns.
func Walk(p *Part, fn func(*Part) error) error {
	if p == nil {
		return nil
	}

	if p.IsLeaf() {
		return fn(p)
	}

	for _, c := range p.Children {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}

	return nil
}

// Bodies returns the primary body leaves: text/plain and text/html parts
// with no disposition.
func Bodies(p *Part) []*Part {
	var out []*Part
	for _, leaf := range Leaves(p) {
		if leaf.Disposition != DispositionNone {
			continue
		}

		if leaf.MediaType == "text/plain" || leaf.MediaType == "text/html" {
			out = append(out, leaf)
		}
	}
	return out
}

// Attachments returns the leaves marked as attachment or inline.
func Attachments(p *Part) []*Part {
	var out []*Part
	for _, leaf := range Leaves(p) {
		if leaf.Disposition.IsAttachment() {
			out = append(out, leaf)
		}
	}
	return out
}

// BodyText concatenates the content of the body leaves, one per line.
func BodyText(p *Part) string {
	var sb strings.Builder
	for i, b := range Bodies(p) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(b.Content)
	}
	return sb.String()
}
