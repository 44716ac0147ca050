package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// AcceptEncoding lists every encoding DecodeBody understands.
const AcceptEncoding = "gzip, deflate, br, zstd"

type decoder func(body []byte) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"br": func(body []byte) (io.ReadCloser, error) {
		return io.NopCloser(brotli.NewReader(bytes.NewReader(body))), nil
	},
	"gzip": func(body []byte) (io.ReadCloser, error) {
		return gzip.NewReader(bytes.NewReader(body))
	},
	"zstd": func(body []byte) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	},
	"deflate": func(body []byte) (io.ReadCloser, error) {
		// zlib framing per RFC 9110, some servers send raw deflate
		if zr, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			return zr, nil
		}
		return flate.NewReader(bytes.NewReader(body)), nil
	},
}

// DecodeBody undoes a Content-Encoding header value. Chained encodings are removed last to first.
func DecodeBody(contentEncoding string, body []byte) ([]byte, error) {
	encodings := strings.Split(contentEncoding, ",")
	for i := len(encodings) - 1; i >= 0; i-- {
		name := strings.ToLower(strings.TrimSpace(encodings[i]))
		if name == "" || name == "identity" {
			continue
		}
		decode, ok := decoders[name]
		if !ok {
			return nil, fmt.Errorf("unsupported content-encoding: %q", name)
		}
		r, err := decode(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out, err := io.ReadAll(r)
		closeErr := r.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("%s: %w", name, closeErr)
		}
		body = out
	}
	return body, nil
}
