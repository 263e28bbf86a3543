package playback

import "layeh.com/gopus"

const (
	sampleRate = 48000
	channels   = 2
	frameSize  = 960                          // 20ms at 48kHz
	frameBytes = frameSize * channels * 2     // s16le
	maxOpusLen = 4000
)

// opusEncoder wraps a gopus encoder fixed at 48kHz stereo, the rate the
// voice transport expects
type opusEncoder struct {
	enc *gopus.Encoder
}

func newOpusEncoder() (*opusEncoder, error) {
	enc, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return nil, err
	}
	return &opusEncoder{enc: enc}, nil
}

// encode converts one little-endian s16 PCM frame into an opus packet
func (e *opusEncoder) encode(pcm []byte) ([]byte, error) {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(pcm[2*i]) | int16(pcm[2*i+1])<<8
	}
	return e.enc.Encode(samples, frameSize, maxOpusLen)
}
