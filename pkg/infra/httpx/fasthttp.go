package httpx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 512
	DefaultMaxIdleConnDuration = 10 * time.Second
	DefaultMaxResponseBodySize = 10 * 1024 * 1024
)

type Options struct {
	Timeout             time.Duration
	MaxConnsPerHost     int
	MaxResponseBodySize int
	UserAgent           string
}

type Option func(*Options)

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.Timeout = timeout
		}
	}
}

func WithMaxConnsPerHost(n int) Option {
	return func(o *Options) { o.MaxConnsPerHost = n }
}

func WithMaxResponseBodySize(size int) Option {
	return func(o *Options) { o.MaxResponseBodySize = size }
}

func WithUserAgent(userAgent string) Option {
	return func(o *Options) { o.UserAgent = userAgent }
}

// FastHTTPClient adapts a pooled fasthttp.Client to the net/http Client interface.
type FastHTTPClient struct {
	client    *fasthttp.Client
	timeout   time.Duration
	userAgent string
}

func NewFastHTTPClient(opts ...Option) *FastHTTPClient {
	o := Options{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &FastHTTPClient{
		client: &fasthttp.Client{
			ReadTimeout:         o.Timeout,
			WriteTimeout:        o.Timeout,
			MaxConnsPerHost:     o.MaxConnsPerHost,
			MaxIdleConnDuration: DefaultMaxIdleConnDuration,
			MaxResponseBodySize: o.MaxResponseBodySize,
		},
		timeout:   o.Timeout,
		userAgent: o.UserAgent,
	}
}

// Do sends req through fasthttp. The request context deadline, when set, bounds the call.
func (c *FastHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)
	defer fasthttp.ReleaseResponse(fastResp)

	if err := copyRequest(req, fastReq, c.userAgent); err != nil {
		return nil, err
	}

	var err error
	if deadline, ok := req.Context().Deadline(); ok {
		err = c.client.DoDeadline(fastReq, fastResp, deadline)
	} else {
		err = c.client.DoTimeout(fastReq, fastResp, c.timeout)
	}
	if err != nil {
		return nil, err
	}
	return toResponse(req, fastResp), nil
}

func copyRequest(req *http.Request, fastReq *fasthttp.Request, userAgent string) error {
	fastReq.SetRequestURI(req.URL.String())
	fastReq.Header.SetMethod(req.Method)
	if req.Host != "" {
		fastReq.Header.SetHost(req.Host)
	}
	for key, values := range req.Header {
		for _, value := range values {
			fastReq.Header.Add(key, value)
		}
	}
	if userAgent != "" && req.Header.Get("User-Agent") == "" {
		fastReq.Header.SetUserAgent(userAgent)
	}
	if req.Body == nil {
		return nil
	}
	defer func() { _ = req.Body.Close() }()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}
	fastReq.SetBodyRaw(body)
	return nil
}

// toResponse copies everything out of fastResp, which is released by the caller.
func toResponse(req *http.Request, fastResp *fasthttp.Response) *http.Response {
	body := append([]byte(nil), fastResp.Body()...)
	headers := make(http.Header)
	fastResp.Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})
	status := fastResp.StatusCode()
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
