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
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/vs49688/mailcrawl/cmd/config"
	"github.com/vs49688/mailcrawl/connector"
	"github.com/vs49688/mailcrawl/crawl"
	"github.com/vs49688/mailcrawl/store/provider"
)

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "crawl",
		Usage:  "Crawl the mailbox",
		Flags:  cfg.Parameters(),
		Action: func(context *cli.Context) error { return run(context, cfg) },
	})
	return app
}

func run(_ *cli.Context, cfg *config.CliConfig) error {
	cfg.ConfigureLogging()

	log.WithFields(log.Fields{
		"mailbox_url":             cfg.Mailbox.URL,
		"mailbox_auth_method":     cfg.Mailbox.AuthMethod,
		"mailbox_username":        cfg.Mailbox.Username,
		"mailbox_password_file":   cfg.Mailbox.PasswordFile,
		"mailbox_tls_skip_verify": cfg.Mailbox.TLSSkipVerify,
		"mailbox_debug":           cfg.Mailbox.Debug,
		"mirror_url":              cfg.Mirror.URL,
		"mirror_username":         cfg.Mirror.Username,
		"job":                     cfg.Job.JobFile,
		"folder":                  cfg.Job.Folder,
		"output":                  cfg.Output,
		"output_content":          cfg.OutputContent,
		"log_level":               cfg.LogLevel,
		"log_format":              cfg.LogFormat,
		"interval":                cfg.Interval,
		"poll_interval":           cfg.PollInterval,
		"session_ttl":             cfg.SessionTTL,
		"batch_size":              cfg.BatchSize,
	}).Info("starting")

	c := connector.New(provider.New(), cfg.SessionOptions()...)
	defer c.Disconnect()

	crawlConfig := crawl.Config{}
	if err := cfg.BuildCrawlConfig(&crawlConfig, c); err != nil {
		return err
	}

	ing, release, err := cfg.BuildIngester()
	if err != nil {
		return err
	}
	defer release()

	doneChan := make(chan error)
	stopChan := make(chan struct{})
	crawlConfig.Ingester = ing
	crawlConfig.DoneChan = doneChan
	crawlConfig.StopChan = stopChan

	cr, err := crawl.NewCrawler(&crawlConfig)
	if err != nil {
		return err
	}

	defer cr.Close()

	sigchan := make(chan os.Signal, 10)
	signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)

	sigcount := 0
	for {
		select {
		case sig := <-sigchan:
			log.WithFields(log.Fields{"signal": sig, "count": sigcount}).Trace("caught_signal")

			sigcount += 1
			if sigcount > 1 {
				log.WithFields(log.Fields{"signal": sig}).Warn("received_interrupt_force_exit")
				os.Exit(1)
			}
			log.WithFields(log.Fields{"signal": sig}).Info("received_interrupt")

			close(stopChan)
		case err := <-doneChan:
			log.WithError(err).Info("crawl_terminated")
			return err
		}
	}
}
