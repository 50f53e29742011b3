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
	"errors"
	"io"

	"github.com/vs49688/mailcrawl/store"
)

const readChunk = 32 * 1024

// readAll reads rc to the end, giving up as soon as ctx is done. rc is
// closed on cancellation so that a blocked read returns.
func readAll(ctx context.Context, rc io.ReadCloser) ([]byte, error) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = rc.Close()
		case <-done:
		}
	}()

	var buf bytes.Buffer
	chunk := make([]byte, readChunk)
	for {
		if ctx.Err() != nil {
			return nil, store.ErrCancelled
		}

		n, err := rc.Read(chunk)
		buf.Write(chunk[:n])

		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			if ctx.Err() != nil {
				return nil, store.ErrCancelled
			}
			return nil, err
		}
	}

	if ctx.Err() != nil {
		return nil, store.ErrCancelled
	}

	return buf.Bytes(), nil
}
