package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"io"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payload = `{"choices":[{"message":{"content":"I'm here with you."}}]}`

func compress(t *testing.T, newWriter func(io.Writer) io.WriteCloser, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := newWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func gzipWriter(w io.Writer) io.WriteCloser { return gzip.NewWriter(w) }
func zlibWriter(w io.Writer) io.WriteCloser { return zlib.NewWriter(w) }
func brWriter(w io.Writer) io.WriteCloser   { return brotli.NewWriter(w) }

func TestDecodeBody(t *testing.T) {
	raw := []byte(payload)

	zstdWriter := func(w io.Writer) io.WriteCloser {
		enc, err := zstd.NewWriter(w)
		require.NoError(t, err)
		return enc
	}
	rawDeflate := func(w io.Writer) io.WriteCloser {
		fw, err := flate.NewWriter(w, flate.DefaultCompression)
		require.NoError(t, err)
		return fw
	}

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{"identity", "", raw},
		{"gzip", "gzip", compress(t, gzipWriter, raw)},
		{"brotli", "br", compress(t, brWriter, raw)},
		{"zstd", "zstd", compress(t, zstdWriter, raw)},
		{"zlib deflate", "deflate", compress(t, zlibWriter, raw)},
		{"raw deflate", "deflate", compress(t, rawDeflate, raw)},
		{"chained", "gzip, br", compress(t, brWriter, compress(t, gzipWriter, raw))},
		{"case and spaces", " GZIP ", compress(t, gzipWriter, raw)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DecodeBody(tt.encoding, tt.body)
			require.NoError(t, err)
			assert.JSONEq(t, payload, string(out))
		})
	}
}

func TestDecodeBody_Errors(t *testing.T) {
	_, err := DecodeBody("lz4", []byte(payload))
	assert.ErrorContains(t, err, "unsupported content-encoding")

	_, err = DecodeBody("gzip", []byte("not gzip"))
	assert.ErrorContains(t, err, "gzip")
}
