package resolver

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"bami/pkg/errors"
)

// watchURLPattern pulls individual video URLs out of yt-dlp's flat-playlist
// JSON-lines output
var watchURLPattern = regexp.MustCompile(`"url": "(https://www\.youtube\.com/watch\?v=[A-Za-z0-9_-]{11})"`)

// ExpandPlaylist runs the external flat-listing tool on a playlist URL and
// extracts video URLs in listing order. Any invocation failure, or output
// with nothing extractable, fails the whole request; partial results are
// never returned.
func (r *Resolver) ExpandPlaylist(ctx context.Context, url string) ([]string, error) {
	out, err := r.run(ctx, r.ytdlpPath, "-j", "--flat-playlist", url)
	if err != nil {
		return nil, errors.NewPlaylistExpansionFailed(url, err)
	}

	matches := watchURLPattern.FindAllStringSubmatch(string(out), -1)
	if len(matches) == 0 {
		return nil, errors.NewPlaylistExpansionFailed(url, fmt.Errorf("no video urls in yt-dlp output"))
	}

	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		urls = append(urls, m[1])
	}

	r.log.Debug("playlist expanded",
		zap.String("url", url),
		zap.Int("videos", len(urls)),
	)
	return urls, nil
}
