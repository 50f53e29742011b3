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

package crawl

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/vs49688/mailcrawl/connector"
	"github.com/vs49688/mailcrawl/store"
)

const DefaultPollInterval = time.Minute

func NewCrawler(cfg *Config) (*Crawler, error) {
	if cfg.Source == nil || cfg.Spec == nil || cfg.Ingester == nil {
		return nil, errors.New("crawler needs a source, a job and an ingester")
	}

	if _, ok := cfg.Spec.Folder(); !ok {
		return nil, errors.New("job has no folder filter")
	}

	c := &Crawler{
		cfg:     *cfg,
		now:     time.Now,
		hasQuit: make(chan struct{}),
	}

	if c.cfg.BatchSize <= 0 || c.cfg.BatchSize > connector.MaxDocumentRequest {
		c.cfg.BatchSize = connector.MaxDocumentRequest
	}

	if c.cfg.PollInterval <= 0 {
		c.cfg.PollInterval = DefaultPollInterval
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())

	go func() {
		err := c.tick()
		c.cancel()
		close(c.hasQuit)
		if c.cfg.DoneChan != nil {
			c.cfg.DoneChan <- err
		}
	}()

	return c, nil
}

// Close stops the crawler, interrupting any crawl in progress, and waits
// for it to exit.
func (c *Crawler) Close() {
	c.cancel()
	<-c.hasQuit
}

func (c *Crawler) tick() error {
	stop := c.cfg.StopChan
	go func() {
		select {
		case <-stop:
			c.cancel()
		case <-c.ctx.Done():
		}
	}()

	poll := time.NewTicker(c.cfg.PollInterval)
	defer poll.Stop()

	for {
		stats, err := c.Crawl(c.ctx)
		switch {
		case err == nil:
			log.WithFields(log.Fields{
				"seeds":   stats.Seeds,
				"batches": stats.Batches,
			}).Info("crawl_complete")
		case store.IsCancelled(err):
			log.Trace("exit_requested")
			return nil
		case store.IsTemporary(err):
			log.WithError(err).Warn("crawl_connection_failed")
		default:
			log.WithError(err).Error("crawl_failed")
			return err
		}

		if c.cfg.Interval <= 0 {
			return nil
		}

		timer := time.NewTimer(c.cfg.Interval)

	wait:
		for {
			select {
			case <-timer.C:
				break wait
			case <-poll.C:
				log.Trace("crawl_poll")
				c.cfg.Source.Poll()
			case <-c.ctx.Done():
				timer.Stop()
				log.Trace("exit_requested")
				return nil
			}
		}
	}
}

// Crawl runs a single seed and extraction pass.
func (c *Crawler) Crawl(ctx context.Context) (Stats, error) {
	stats := Stats{Start: c.lastEnd, End: c.now()}

	seeds, err := c.cfg.Source.DiscoverSeeds(ctx, c.cfg.Spec, stats.Start, stats.End)
	if err != nil {
		stats.Cancelled = store.IsCancelled(err)
		return stats, err
	}

	seeds = dedup(seeds)
	stats.Seeds = len(seeds)

	for start := 0; start < len(seeds); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(seeds) {
			end = len(seeds)
		}

		batch := seeds[start:end]
		versions := c.cfg.Source.DocumentVersions(batch)

		log.WithFields(log.Fields{
			"start": start,
			"count": len(batch),
		}).Debug("crawl_batch")

		if err := c.cfg.Source.ProcessDocuments(ctx, batch, versions, c.cfg.Spec, c.cfg.Ingester); err != nil {
			stats.Cancelled = store.IsCancelled(err)
			return stats, err
		}
		stats.Batches++
	}

	c.lastEnd = stats.End
	return stats, nil
}

func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
