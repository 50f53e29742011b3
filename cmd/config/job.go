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
	"os"
	"strings"

	"github.com/vs49688/mailcrawl/connector"
	"github.com/vs49688/mailcrawl/query"
	"gopkg.in/yaml.v3"
)

// jobFile is the on-disk job specification. JSON is accepted too.
type jobFile struct {
	Folder   string         `yaml:"folder"`
	Filters  []query.Filter `yaml:"filters"`
	Metadata []string       `yaml:"metadata"`
}

func loadJobFile(path string) (*jobFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	jf := &jobFile{}
	if err := yaml.Unmarshal(b, jf); err != nil {
		return nil, fmt.Errorf("parse job file %v: %w", path, err)
	}
	return jf, nil
}

func parseFilters(values []string) ([]query.Filter, error) {
	filters := make([]query.Filter, 0, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid filter %q, want name=value", v)
		}
		filters = append(filters, query.Filter{Name: name, Value: value})
	}
	return filters, nil
}

// Resolve merges the job file with the flags. Flags add filters and
// metadata to those in the file. The folder is taken from the flag, then
// urlFolder, then the file.
func (cfg *JobConfig) Resolve(urlFolder string) (*connector.JobSpec, error) {
	jf := &jobFile{}
	if cfg.JobFile != "" {
		var err error
		if jf, err = loadJobFile(cfg.JobFile); err != nil {
			return nil, err
		}
	}

	filters, err := parseFilters(cfg.Filters.Value())
	if err != nil {
		return nil, err
	}

	spec := &connector.JobSpec{}
	for _, f := range append(jf.Filters, filters...) {
		if f.IsFolder() {
			if jf.Folder == "" {
				jf.Folder = f.Value
			}
			continue
		}
		spec.Filters = append(spec.Filters, f)
	}

	folder := cfg.Folder
	if folder == "" {
		folder = urlFolder
	}
	if folder == "" {
		folder = jf.Folder
	}

	if folder != "" {
		spec.Filters = append([]query.Filter{{Name: query.FolderFilter, Value: folder}}, spec.Filters...)
	}

	spec.Metadata = append(spec.Metadata, jf.Metadata...)
	for _, m := range cfg.Metadata.Value() {
		for _, name := range strings.Split(m, ",") {
			if name = strings.TrimSpace(name); name != "" {
				spec.Metadata = append(spec.Metadata, name)
			}
		}
	}

	return spec, nil
}
