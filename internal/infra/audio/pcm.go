package audio

import (
	"encoding/base64"
	"errors"
	"time"
)

// The provider's native TTS output format: signed 16-bit little-endian
// samples, one channel, 24 kHz.
const (
	DefaultSampleRate = 24000
	DefaultChannels   = 1
)

var (
	ErrOddLength = errors.New("audio: byte stream is not a whole number of 16-bit samples")
	ErrBadFormat = errors.New("audio: sample rate and channel count must be positive")
)

// DecodeBase64 decodes a standard-alphabet base64 payload. No padding or
// alphabet variations are tolerated.
func DecodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.Strict().DecodeString(s)
}

// EncodeBase64 is the inverse of DecodeBase64.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// ToPCM interprets raw bytes as contiguous s16le samples and normalizes each
// to [-1.0, 1.0) by dividing by 32768. The frame count equals the number of
// 16-bit samples in the input.
func ToPCM(raw []byte, sampleRate, channels int) ([]float32, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, ErrBadFormat
	}
	if len(raw)%2 != 0 {
		return nil, ErrOddLength
	}
	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}

// Duration reports the playback length of a raw s16le stream.
func Duration(raw []byte, sampleRate, channels int) time.Duration {
	if sampleRate <= 0 || channels <= 0 {
		return 0
	}
	frames := len(raw) / 2 / channels
	return time.Duration(frames) * time.Second / time.Duration(sampleRate)
}
