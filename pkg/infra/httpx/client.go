package httpx

import "net/http"

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client is the net/http shaped client the SDK-less providers and the risk scorer build requests for.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
