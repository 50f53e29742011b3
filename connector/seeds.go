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
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/query"
	"github.com/vs49688/mailcrawl/store"
)

// DiscoverSeeds returns the Message-IDs of the messages matching spec, in
// the order the server returns them. The time window is accepted but not
// applied: servers cannot search on it reliably.
func (c *Connector) DiscoverSeeds(ctx context.Context, spec *JobSpec, start, end time.Time) ([]string, error) {
	name, ok := spec.Folder()
	if !ok {
		log.Debug("seed_no_folder")
		return nil, nil
	}

	logger := log.WithFields(log.Fields{
		"folder": name,
		"start":  start,
		"end":    end,
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover seeds: %w", store.ErrCancelled)
	}

	s, err := c.store()
	if err != nil {
		return nil, err
	}

	f, err := c.openFolder(s, name)
	if err != nil {
		logger.WithError(err).Error("seed_folder_open_failed")
		return nil, err
	}
	defer closeFolder(f)

	msgs, err := f.Search(query.Compile(spec.Filters))
	if err != nil {
		logger.WithError(err).Error("seed_search_failed")
		return nil, &store.RepositoryError{Op: "search " + name, Err: err}
	}

	seeds := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Envelope.MessageID == "" {
			logger.WithField("ref", msg.Ref).Warn("seed_missing_message_id")
			continue
		}
		seeds = append(seeds, msg.Envelope.MessageID)
	}

	logger.WithField("count", len(seeds)).Info("seed_discovery_complete")
	return seeds, nil
}
