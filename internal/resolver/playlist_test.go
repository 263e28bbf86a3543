package resolver

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bami/pkg/errors"
)

func TestExpandPlaylistExtractsURLsInOrder(t *testing.T) {
	out := `{"id": "aaaaaaaaaaa", "url": "https://www.youtube.com/watch?v=aaaaaaaaaaa", "title": "first"}
{"id": "Bb_1-cDeFgH", "url": "https://www.youtube.com/watch?v=Bb_1-cDeFgH", "title": "second"}
{"id": "ccccccccccc", "url": "https://www.youtube.com/watch?v=ccccccccccc", "title": "third"}`

	r := newTestResolver(func(_ context.Context, name string, args ...string) ([]byte, error) {
		assert.Equal(t, []string{"-j", "--flat-playlist", "https://www.youtube.com/playlist?list=PLabc"}, args)
		return []byte(out), nil
	})

	urls, err := r.ExpandPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLabc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=Bb_1-cDeFgH",
		"https://www.youtube.com/watch?v=ccccccccccc",
	}, urls)
}

func TestExpandPlaylistCommandFailure(t *testing.T) {
	r := newTestResolver(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return nil, stderrors.New("exit status 1")
	})

	urls, err := r.ExpandPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLabc")
	assert.Nil(t, urls)
	var expErr *errors.ErrPlaylistExpansionFailed
	require.True(t, stderrors.As(err, &expErr))
}

func TestExpandPlaylistEmptyOutput(t *testing.T) {
	r := newTestResolver(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte(`{"id": "abc", "some": "json without watch urls"}`), nil
	})

	urls, err := r.ExpandPlaylist(context.Background(), "https://www.youtube.com/playlist?list=PLabc")
	assert.Nil(t, urls, "no partial results")
	var expErr *errors.ErrPlaylistExpansionFailed
	require.True(t, stderrors.As(err, &expErr))
}
