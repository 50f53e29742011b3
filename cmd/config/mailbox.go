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
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"github.com/vs49688/mailcrawl/ingest"
	"github.com/vs49688/mailcrawl/store"
)

func DefaultMailboxConfig() MailboxConfig {
	return MailboxConfig{
		AuthMethod:    "normal",
		TLSSkipVerify: false,
		Debug:         false,
	}
}

func (cfg *MailboxConfig) makeMailboxParameters(lowerPrefix string, required bool) []cli.Flag {
	def := DefaultMailboxConfig()
	upperPrefix := strings.ToUpper(lowerPrefix)

	return []cli.Flag{
		&cli.StringFlag{
			Name:        fmt.Sprintf("%v-url", lowerPrefix),
			Usage:       fmt.Sprintf("%v mailbox url (imap, imaps, pop3, pop3s)", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_URL", upperPrefix)},
			Destination: &cfg.URL,
			Required:    required,
			Value:       def.URL,
		},
		&cli.StringFlag{
			Name:        fmt.Sprintf("%v-auth-method", lowerPrefix),
			Usage:       fmt.Sprintf("%v auth method (normal, plain)", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_AUTH_METHOD", upperPrefix)},
			Destination: &cfg.AuthMethod,
			Required:    false,
			Value:       def.AuthMethod,
		},
		&cli.StringFlag{
			Name:        fmt.Sprintf("%v-username", lowerPrefix),
			Usage:       fmt.Sprintf("%v username", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_USERNAME", upperPrefix)},
			Destination: &cfg.Username,
			Required:    required,
			Value:       def.Username,
		},
		&cli.StringFlag{
			Name:        fmt.Sprintf("%v-password", lowerPrefix),
			Usage:       fmt.Sprintf("%v password", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_PASSWORD", upperPrefix)},
			Destination: &cfg.Password,
			Required:    false,
			Value:       def.Password,
		},
		&cli.StringFlag{
			Name:        fmt.Sprintf("%v-password-file", lowerPrefix),
			Usage:       fmt.Sprintf("%v password file", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_PASSWORD_FILE", upperPrefix)},
			Destination: &cfg.PasswordFile,
			Required:    false,
			Value:       def.PasswordFile,
		},
		&cli.StringFlag{
			Name:        fmt.Sprintf("%v-systemd-credential", lowerPrefix),
			Usage:       fmt.Sprintf("name of the systemd credential holding the %v password", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_SYSTEMD_CREDENTIAL", upperPrefix)},
			Destination: &cfg.SystemdCredential,
			Required:    false,
			Value:       def.SystemdCredential,
		},
		&cli.BoolFlag{
			Name:        fmt.Sprintf("%v-tls-skip-verify", lowerPrefix),
			Usage:       fmt.Sprintf("skip %v tls verification", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_TLS_SKIP_VERIFY", upperPrefix)},
			Destination: &cfg.TLSSkipVerify,
			Value:       def.TLSSkipVerify,
		},
		&cli.StringSliceFlag{
			Name:        fmt.Sprintf("%v-property", lowerPrefix),
			Usage:       fmt.Sprintf("extra %v connection property, name=value (repeatable)", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_PROPERTIES", upperPrefix)},
			Destination: &cfg.Properties,
		},
		&cli.BoolFlag{
			Name:        fmt.Sprintf("%v-debug", lowerPrefix),
			Usage:       fmt.Sprintf("display %v protocol debug info", lowerPrefix),
			EnvVars:     []string{fmt.Sprintf("MAILCRAWL_%v_DEBUG", upperPrefix)},
			Destination: &cfg.Debug,
			Value:       def.Debug,
		},
	}
}

// extractUrl splits a mailbox url into its protocol, host, port and folder.
func extractUrl(u *url.URL) (store.Protocol, string, int, string, error) {
	protocol, ok := store.ParseProtocol(u.Scheme)
	if !ok {
		return "", "", 0, "", errInvalidScheme
	}

	port := store.DefaultPort(protocol)
	if p := u.Port(); p != "" {
		var err error
		if port, err = strconv.Atoi(p); err != nil {
			return "", "", 0, "", fmt.Errorf("invalid port: %w", err)
		}
	}

	return protocol, u.Hostname(), port, strings.TrimPrefix(u.Path, "/"), nil
}

func (cfg *MailboxConfig) readPassword(prefix string) (string, error) {
	switch {
	case cfg.Password != "":
		return cfg.Password, nil
	case cfg.PasswordFile != "":
		return readSecret(cfg.PasswordFile)
	case cfg.SystemdCredential != "":
		dir := os.Getenv("CREDENTIALS_DIRECTORY")
		if dir == "" {
			return "", fmt.Errorf("\"%v-systemd-credential\" given but CREDENTIALS_DIRECTORY is not set", prefix)
		}

		if cfg.SystemdCredential != filepath.Base(cfg.SystemdCredential) {
			return "", errInvalidCredential
		}

		return readSecret(filepath.Join(dir, cfg.SystemdCredential))
	default:
		return "", fmt.Errorf("at least one of the \"%v-password\", \"%v-password-file\" or \"%v-systemd-credential\" flags is required", prefix, prefix, prefix)
	}
}

func readSecret(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func parseProperties(values []string) (map[string]string, error) {
	props := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid property %q, want name=value", v)
		}
		props[strings.ToLower(name)] = value
	}
	return props, nil
}

// Resolve builds the store configuration and returns the folder named by
// the url path, if any.
func (cfg *MailboxConfig) Resolve(prefix string) (*store.Config, string, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, "", err
	}

	protocol, host, port, folder, err := extractUrl(u)
	if err != nil {
		return nil, "", err
	}

	if cfg.Username == "" {
		return nil, "", fmt.Errorf("\"%v-username\" is required", prefix)
	}

	password, err := cfg.readPassword(prefix)
	if err != nil {
		return nil, "", err
	}

	props, err := parseProperties(cfg.Properties.Value())
	if err != nil {
		return nil, "", err
	}

	if _, ok := props[store.PropertyAuthMethod]; !ok && cfg.AuthMethod != "" {
		props[store.PropertyAuthMethod] = strings.ToLower(cfg.AuthMethod)
	}

	sc := &store.Config{
		Host:       host,
		Port:       port,
		Protocol:   protocol,
		Username:   cfg.Username,
		Password:   password,
		Properties: props,
		Debug:      cfg.Debug,
	}

	if cfg.TLSSkipVerify {
		// #nosec G402
		sc.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return sc, folder, nil
}

// ResolveMirror builds the configuration of an IMAP mailbox that extracted
// messages are copied into.
func (cfg *MailboxConfig) ResolveMirror(prefix string) (*ingest.MailboxConfig, error) {
	sc, folder, err := cfg.Resolve(prefix)
	if err != nil {
		return nil, err
	}

	if !sc.Protocol.IsIMAP() {
		return nil, fmt.Errorf("\"%v-url\" must be an imap or imaps url", prefix)
	}

	if folder == "" {
		folder = store.InboxName
	}

	return &ingest.MailboxConfig{
		HostPort:  net.JoinHostPort(sc.Host, strconv.Itoa(sc.Port)),
		Username:  sc.Username,
		Password:  sc.Password,
		Mailbox:   folder,
		TLS:       sc.Protocol.TLS(),
		TLSConfig: sc.TLSConfig,
		Debug:     sc.Debug,
	}, nil
}
