package es

import (
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	DefaultStoryIndex = "stories"
	DefaultGenreIndex = "genres"
)

type ClientConfig struct {
	Addresses  []string
	StoryIndex string
	GenreIndex string
	Username   string
	Password   string
}

func (c ClientConfig) withDefaults() ClientConfig {
	if c.StoryIndex == "" {
		c.StoryIndex = DefaultStoryIndex
	}
	if c.GenreIndex == "" {
		c.GenreIndex = DefaultGenreIndex
	}
	return c
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewTypedClient(cfg)

	return client, err
}

// Client bundles the typed client with the index names of a catalog.
type Client struct {
	es         *elasticsearch.TypedClient
	storyIndex string
	genreIndex string
}

func NewClient(config ClientConfig) (*Client, error) {
	config = config.withDefaults()

	client, err := newClient(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		es:         client,
		storyIndex: config.StoryIndex,
		genreIndex: config.GenreIndex,
	}, nil
}
