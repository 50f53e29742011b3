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

package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// JSONLines writes one Record per line.
type JSONLines struct {
	enc         *json.Encoder
	withContent bool
}

func NewJSONLines(w io.Writer, withContent bool) *JSONLines {
	return &JSONLines{enc: json.NewEncoder(w), withContent: withContent}
}

func (j *JSONLines) Ingest(id, version, uri string, doc *Document) error {
	rec := Record{
		ID:       id,
		Version:  version,
		URI:      uri,
		FileName: doc.FileName,
		Length:   doc.Length,
		Fields:   doc.Fields,
	}

	if j.withContent && doc.Binary != nil {
		b, err := io.ReadAll(doc.Binary)
		if err != nil {
			return fmt.Errorf("read %v: %w", id, err)
		}
		rec.Content = b
	}

	if err := j.enc.Encode(&rec); err != nil {
		return err
	}

	log.WithFields(log.Fields{"id": id, "length": doc.Length}).Debug("ingest_record_written")
	return nil
}
