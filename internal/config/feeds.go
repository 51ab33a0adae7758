// Package config loads application configuration that lives outside
// environment variables, such as the feed list.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"betpress/internal/domain/entity"
)

// FeedsFile is the on-disk shape of the feed list.
type FeedsFile struct {
	Feeds []FeedConfig `yaml:"feeds" validate:"required,min=1,dive"`
}

// FeedConfig describes one RSS source.
type FeedConfig struct {
	Name   string `yaml:"name" validate:"required"`
	URL    string `yaml:"url" validate:"required,url"`
	Active *bool  `yaml:"active"` // nil means active
}

var validate = validator.New()

// LoadFeeds reads and validates the feed list from path.
func LoadFeeds(path string) ([]*entity.Feed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFeeds: %w", err)
	}
	return ParseFeeds(raw)
}

// ParseFeeds parses a YAML feed list.
func ParseFeeds(raw []byte) ([]*entity.Feed, error) {
	var file FeedsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("ParseFeeds: unmarshal: %w", err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("ParseFeeds: validate: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Feeds))
	feeds := make([]*entity.Feed, 0, len(file.Feeds))
	for _, fc := range file.Feeds {
		if _, dup := seen[fc.URL]; dup {
			return nil, fmt.Errorf("ParseFeeds: duplicate feed url %q: %w", fc.URL, entity.ErrInvalidFeed)
		}
		seen[fc.URL] = struct{}{}

		active := true
		if fc.Active != nil {
			active = *fc.Active
		}
		feeds = append(feeds, &entity.Feed{
			Name:   fc.Name,
			URL:    fc.URL,
			Active: active,
		})
	}
	return feeds, nil
}
