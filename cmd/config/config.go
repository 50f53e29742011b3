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

package config

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/vs49688/mailcrawl/connector"
	"github.com/vs49688/mailcrawl/crawl"
	"github.com/vs49688/mailcrawl/ingest"
	"github.com/vs49688/mailcrawl/session"
)

func DefaultConfig() CliConfig {
	return CliConfig{
		Mailbox:       DefaultMailboxConfig(),
		Mirror:        DefaultMailboxConfig(),
		LogLevel:      "info",
		LogFormat:     "text",
		Output:        "-",
		OutputContent: false,
		Interval:      0,
		PollInterval:  crawl.DefaultPollInterval,
		SessionTTL:    session.DefaultTTL,
		BatchSize:     connector.MaxDocumentRequest,
	}
}

func (cfg *CliConfig) LoggingParameters() []cli.Flag {
	def := DefaultConfig()

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "logging level",
			EnvVars:     []string{"MAILCRAWL_LOG_LEVEL"},
			Destination: &cfg.LogLevel,
			Value:       def.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "logging format (text/json)",
			EnvVars:     []string{"MAILCRAWL_LOG_FORMAT"},
			Destination: &cfg.LogFormat,
			Value:       def.LogFormat,
		},
	}
}

// ConnectionParameters are the flags needed to reach the mailbox.
func (cfg *CliConfig) ConnectionParameters() []cli.Flag {
	def := DefaultConfig()

	var flags []cli.Flag
	flags = append(flags, cfg.Mailbox.makeMailboxParameters("mailbox", true)...)
	flags = append(flags, cfg.LoggingParameters()...)
	flags = append(flags, &cli.DurationFlag{
		Name:        "session-ttl",
		Usage:       "how long an idle session is kept open",
		EnvVars:     []string{"MAILCRAWL_SESSION_TTL"},
		Destination: &cfg.SessionTTL,
		Value:       def.SessionTTL,
	})
	return flags
}

// Parameters are the flags of the crawl command.
func (cfg *CliConfig) Parameters() []cli.Flag {
	def := DefaultConfig()

	flags := cfg.ConnectionParameters()
	flags = append(flags, cfg.Mirror.makeMailboxParameters("mirror", false)...)
	flags = append(flags, []cli.Flag{
		&cli.StringFlag{
			Name:        "job",
			Usage:       "job file (yaml or json)",
			EnvVars:     []string{"MAILCRAWL_JOB"},
			Destination: &cfg.Job.JobFile,
		},
		&cli.StringFlag{
			Name:        "folder",
			Usage:       "folder to crawl. overrides the url path and job file",
			EnvVars:     []string{"MAILCRAWL_FOLDER"},
			Destination: &cfg.Job.Folder,
		},
		&cli.StringSliceFlag{
			Name:        "filter",
			Usage:       "search filter, name=value (subject, from, to, body; repeatable)",
			EnvVars:     []string{"MAILCRAWL_FILTERS"},
			Destination: &cfg.Job.Filters,
		},
		&cli.StringSliceFlag{
			Name:        "metadata",
			Usage:       "metadata field to extract (to, from, subject, body, date, attachment-encoding, attachment-mimetype)",
			EnvVars:     []string{"MAILCRAWL_METADATA"},
			Destination: &cfg.Job.Metadata,
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "file to write extracted documents to, as json lines. - for stdout",
			EnvVars:     []string{"MAILCRAWL_OUTPUT"},
			Destination: &cfg.Output,
			Value:       def.Output,
		},
		&cli.BoolFlag{
			Name:        "output-content",
			Usage:       "include the raw message in the output",
			EnvVars:     []string{"MAILCRAWL_OUTPUT_CONTENT"},
			Destination: &cfg.OutputContent,
			Value:       def.OutputContent,
		},
		&cli.DurationFlag{
			Name:        "interval",
			Usage:       "time between crawls. 0 crawls once",
			EnvVars:     []string{"MAILCRAWL_INTERVAL"},
			Destination: &cfg.Interval,
			Value:       def.Interval,
		},
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "how often an idle session is checked for expiry",
			EnvVars:     []string{"MAILCRAWL_POLL_INTERVAL"},
			Destination: &cfg.PollInterval,
			Value:       def.PollInterval,
		},
		&cli.UintFlag{
			Name:        "batch-size",
			Usage:       fmt.Sprintf("documents per extraction batch (max %v)", connector.MaxDocumentRequest),
			EnvVars:     []string{"MAILCRAWL_BATCH_SIZE"},
			Destination: &cfg.BatchSize,
			Value:       def.BatchSize,
		},
	}...)

	return flags
}

func (cfg *CliConfig) ConfigureLogging() {
	logLevel, err := log.ParseLevel(cfg.LogLevel)
	if err == nil {
		log.SetLevel(logLevel)
	}

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
}

func (cfg *CliConfig) SessionOptions() []session.Option {
	if cfg.SessionTTL <= 0 {
		return nil
	}
	return []session.Option{session.WithTTL(cfg.SessionTTL)}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// OpenOutput opens the document output. The caller closes it.
func (cfg *CliConfig) OpenOutput() (io.WriteCloser, error) {
	if cfg.Output == "" || cfg.Output == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(cfg.Output)
}

// BuildIngester returns the document sink and a function releasing it.
func (cfg *CliConfig) BuildIngester() (ingest.Ingester, func(), error) {
	out, err := cfg.OpenOutput()
	if err != nil {
		return nil, nil, err
	}

	jsonl := ingest.NewJSONLines(out, cfg.OutputContent)
	if cfg.Mirror.URL == "" {
		return jsonl, func() { _ = out.Close() }, nil
	}

	mirrorConfig, err := cfg.Mirror.ResolveMirror("mirror")
	if err != nil {
		_ = out.Close()
		return nil, nil, err
	}

	mirror, err := ingest.DialMailbox(mirrorConfig)
	if err != nil {
		_ = out.Close()
		return nil, nil, err
	}

	tee := ingest.Tee(mirror, jsonl)
	return tee, func() {
		mirror.Close()
		_ = out.Close()
	}, nil
}

// BuildCrawlConfig resolves everything the crawl command needs except the
// channels.
func (cfg *CliConfig) BuildCrawlConfig(crawlConfig *crawl.Config, c *connector.Connector) error {
	storeConfig, urlFolder, err := cfg.Mailbox.Resolve("mailbox")
	if err != nil {
		return err
	}

	spec, err := cfg.Job.Resolve(urlFolder)
	if err != nil {
		return err
	}

	if _, ok := spec.Folder(); !ok {
		return fmt.Errorf("no folder given: use \"--folder\", the url path or the job file")
	}

	c.Connect(storeConfig)

	crawlConfig.Source = c
	crawlConfig.Spec = spec
	crawlConfig.Interval = cfg.Interval
	crawlConfig.PollInterval = cfg.PollInterval
	crawlConfig.BatchSize = int(cfg.BatchSize)
	return nil
}
