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
	"errors"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	errInvalidScheme     = errors.New("invalid uri scheme")
	errInvalidCredential = errors.New("invalid credential name")
)

type MailboxConfig struct {
	URL               string          `json:"url" yaml:"url"`
	AuthMethod        string          `json:"auth_method" yaml:"auth_method"`
	Username          string          `json:"username" yaml:"username"`
	Password          string          `json:"-" yaml:"-"`
	PasswordFile      string          `json:"password_file" yaml:"password_file"`
	SystemdCredential string          `json:"systemd_credential" yaml:"systemd_credential"`
	TLSSkipVerify     bool            `json:"tls_skip_verify" yaml:"tls_skip_verify"`
	Properties        cli.StringSlice `json:"-" yaml:"-"`
	Debug             bool            `json:"debug" yaml:"debug"`
}

type JobConfig struct {
	JobFile  string          `json:"job_file" yaml:"job_file"`
	Folder   string          `json:"folder" yaml:"folder"`
	Filters  cli.StringSlice `json:"-" yaml:"-"`
	Metadata cli.StringSlice `json:"-" yaml:"-"`
}

type CliConfig struct {
	Mailbox       MailboxConfig `json:"mailbox"`
	Job           JobConfig     `json:"job"`
	LogLevel      string        `json:"log_level"`
	LogFormat     string        `json:"log_format"`
	Output        string        `json:"output"`
	OutputContent bool          `json:"output_content"`
	Mirror        MailboxConfig `json:"mirror"`
	Interval      time.Duration `json:"interval"`
	PollInterval  time.Duration `json:"poll_interval"`
	SessionTTL    time.Duration `json:"session_ttl"`
	BatchSize     uint          `json:"batch_size"`
}
