package mocks

import (
	"net/http"

	"github.com/stretchr/testify/mock"
)

// MockHTTPClient is a testify mock of httpx.Client.
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	var resp *http.Response
	if r := args.Get(0); r != nil {
		resp = r.(*http.Response) //nolint:errcheck
	}
	return resp, args.Error(1)
}
