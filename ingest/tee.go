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
	"bytes"
	"io"
)

// Tee hands every document to each ingester in turn, stopping at the first
// error.
func Tee(ingesters ...Ingester) Ingester {
	return tee(ingesters)
}

func (t tee) Ingest(id, version, uri string, doc *Document) error {
	var body []byte
	if doc.Binary != nil {
		var err error
		if body, err = io.ReadAll(doc.Binary); err != nil {
			return err
		}
	}

	for _, ing := range t {
		d := *doc
		if body != nil {
			d.Binary = bytes.NewReader(body)
		}

		if err := ing.Ingest(id, version, uri, &d); err != nil {
			return err
		}
	}
	return nil
}
