package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkcrawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Runs      linkcrawl.RunService
	Fetcher   linkcrawl.Fetcher
	Extractor linkcrawl.LinkExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"YAML file with flag defaults"`
	Verbose bool            `short:"v" help:"Log every fetch and storage call"`

	Crawl  CrawlCmd  `cmd:"" help:"Crawl pages reachable from a seed URL"`
	List   ListCmd   `cmd:"" help:"List saved crawl runs"`
	Show   ShowCmd   `cmd:"" help:"Show a saved crawl run as Markdown"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved crawl run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seed        string        `arg:"" name:"seed-url" help:"URL to start crawling from"`
	Prefix      string        `help:"Only follow links starting with this prefix (default: scheme://host/ of the seed)"`
	Concurrency int           `short:"c" default:"50" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Per-fetch timeout"`
	Retries     int           `default:"0" help:"Retry failed fetches this many times with exponential backoff"`
	MaxVisited  int           `default:"0" help:"Stop after visiting this many pages (0 for no limit)"`
	Approximate bool          `help:"Track visited pages in a fixed-size Bloom filter"`
	Capacity    uint          `default:"1000000" help:"Expected page count when --approximate is set"`
	Save        bool          `help:"Store the run in the database"`
	Report      string        `type:"path" help:"Write a Markdown report to this file"`
	UserAgent   string        `default:"linkcrawl/1.0" help:"User-Agent header for requests"`
	Selector    string        `default:"a" help:"CSS selector for link elements"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `default:"20" help:"Maximum number of runs to list (0 for all)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" name:"run-id" help:"Run ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" name:"run-id" help:"Run ID"`
}
