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

package check

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
	"github.com/vs49688/mailcrawl/cmd/config"
	"github.com/vs49688/mailcrawl/connector"
	"github.com/vs49688/mailcrawl/store/provider"
)

func RegisterCommand(app *cli.App) *cli.App {
	cfg := &config.CliConfig{}
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "check",
		Usage:  "Check the mailbox can be reached",
		Flags:  cfg.ConnectionParameters(),
		Action: func(context *cli.Context) error { return run(context, cfg) },
	})
	return app
}

func run(context *cli.Context, cfg *config.CliConfig) error {
	cfg.ConfigureLogging()

	storeConfig, _, err := cfg.Mailbox.Resolve("mailbox")
	if err != nil {
		return err
	}

	c := connector.New(provider.New(), cfg.SessionOptions()...)
	c.Connect(storeConfig)
	defer c.Disconnect()

	status := c.Check()
	fmt.Fprintln(context.App.Writer, status)

	if status != connector.StatusWorking {
		return errors.New(status)
	}
	return nil
}
