package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"bami/internal/voice"
	"bami/pkg/errors"
)

// ytdlpProbe is the subset of `yt-dlp --dump-json` output we read
type ytdlpProbe struct {
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	Thumbnail  string  `json:"thumbnail"`
	WebpageURL string  `json:"webpage_url"`
}

// FetchMetadata probes one source with yt-dlp. For direct URLs whose probe
// comes back with holes, OpenGraph tags from the page fill what they can;
// whatever stays empty is simply unknown.
func (r *Resolver) FetchMetadata(ctx context.Context, source string) (voice.AuxMetadata, error) {
	out, err := r.run(ctx, r.ytdlpPath, "--dump-json", "--no-playlist", source)
	if err != nil {
		return voice.AuxMetadata{}, errors.NewTrackResolutionFailed(source, err)
	}

	var probe ytdlpProbe
	if err := json.Unmarshal(out, &probe); err != nil {
		return voice.AuxMetadata{}, errors.NewTrackResolutionFailed(source, err)
	}

	md := voice.AuxMetadata{
		Title:     probe.Title,
		SourceURL: probe.WebpageURL,
		Thumbnail: probe.Thumbnail,
		Duration:  time.Duration(probe.Duration * float64(time.Second)),
	}
	if md.SourceURL == "" && strings.HasPrefix(source, "http") {
		md.SourceURL = source
	}

	if strings.HasPrefix(source, "http") && (md.Title == "" || md.Thumbnail == "") {
		r.fillFromOpenGraph(ctx, source, &md)
	}

	return md, nil
}

// fillFromOpenGraph scrapes og:title / og:image from the source page into
// the empty metadata fields. Best effort only.
func (r *Resolver) fillFromOpenGraph(ctx context.Context, url string, md *voice.AuxMetadata) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}

	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Debug("opengraph fetch failed", zap.String("url", url), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return
	}

	if md.Title == "" {
		if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			md.Title = title
		}
	}
	if md.Thumbnail == "" {
		if image, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
			md.Thumbnail = image
		}
	}
}
