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
	"time"

	"github.com/vs49688/mailcrawl/connector"
	"github.com/vs49688/mailcrawl/ingest"
)

// Source is what the crawler drives. *connector.Connector implements it.
type Source interface {
	DiscoverSeeds(ctx context.Context, spec *connector.JobSpec, start, end time.Time) ([]string, error)

	DocumentVersions(ids []string) []string

	ProcessDocuments(ctx context.Context, ids []string, versions []string, spec *connector.JobSpec, ing ingest.Ingester) error

	Poll()
}

type Config struct {
	Source   Source
	Spec     *connector.JobSpec
	Ingester ingest.Ingester

	// Interval between crawls. Zero crawls once and exits.
	Interval time.Duration
	// PollInterval is how often an idle session is checked for expiry.
	PollInterval time.Duration
	BatchSize    int

	DoneChan chan<- error
	StopChan <-chan struct{}
}

type Crawler struct {
	cfg     Config
	lastEnd time.Time
	now     func() time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	hasQuit chan struct{}
}

// Stats summarises one crawl.
type Stats struct {
	Seeds     int
	Batches   int
	Start     time.Time
	End       time.Time
	Cancelled bool
}
