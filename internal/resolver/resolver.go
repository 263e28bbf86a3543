package resolver

import (
	"context"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bami/internal/voice"
)

// QueryKind classifies a user-supplied play query
type QueryKind int

const (
	// KindSearch is free text resolved through yt-dlp's search frontend
	KindSearch QueryKind = iota
	// KindPlaylist is a URL expanded into its individual videos
	KindPlaylist
	// KindDirect is a plain URL played as a single track
	KindDirect
)

// Classify applies the query rules in order, first match wins
func Classify(query string) QueryKind {
	if !strings.HasPrefix(query, "http") {
		return KindSearch
	}
	if strings.Contains(query, "playlist") {
		return KindPlaylist
	}
	return KindDirect
}

// metadataConcurrency bounds parallel yt-dlp probes for playlist batches
const metadataConcurrency = 4

// RunFunc executes an external command and returns its stdout
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Resolved is one track source with its fetched metadata
type Resolved struct {
	Source   string
	Metadata voice.AuxMetadata
}

// Skipped records a source dropped from a batch and why
type Skipped struct {
	Source string
	Err    error
}

// Result is a resolution outcome: tracks in playback order plus whatever
// was skipped on per-track failures
type Result struct {
	Tracks  []Resolved
	Skipped []Skipped
}

// Resolver translates play queries into playable track descriptors by
// shelling out to yt-dlp, with an OpenGraph scrape as metadata fallback
// for direct URLs.
type Resolver struct {
	ytdlpPath string
	http      *http.Client
	log       *zap.Logger
	run       RunFunc
}

// New creates a resolver using the given yt-dlp binary
func New(ytdlpPath string, log *zap.Logger) *Resolver {
	return &Resolver{
		ytdlpPath: ytdlpPath,
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       log,
		run:       runCommand,
	}
}

// Resolve expands a query into resolved tracks. Playlist expansion failure
// is fatal for the whole request; a single track's metadata failure only
// drops that track from the batch.
func (r *Resolver) Resolve(ctx context.Context, query string) (*Result, error) {
	var sources []string

	switch Classify(query) {
	case KindSearch:
		sources = []string{"ytsearch1:" + query}
	case KindPlaylist:
		urls, err := r.ExpandPlaylist(ctx, query)
		if err != nil {
			return nil, err
		}
		sources = urls
	case KindDirect:
		sources = []string{query}
	}

	type probe struct {
		md  voice.AuxMetadata
		err error
	}
	probes := make([]probe, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(metadataConcurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			md, err := r.FetchMetadata(gctx, src)
			probes[i] = probe{md: md, err: err}
			return nil
		})
	}
	_ = g.Wait() // per-track errors are collected, never propagated

	result := &Result{}
	for i, src := range sources {
		if probes[i].err != nil {
			r.log.Warn("skipping unresolvable track",
				zap.String("source", src),
				zap.Error(probes[i].err),
			)
			result.Skipped = append(result.Skipped, Skipped{Source: src, Err: probes[i].err})
			continue
		}
		result.Tracks = append(result.Tracks, Resolved{Source: src, Metadata: probes[i].md})
	}
	return result, nil
}
