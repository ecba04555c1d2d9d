package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

const defaultESTimeout = 5 * time.Second

// NewESClient builds the Elasticsearch client used for exhibition indexing
// and search. reqTimeout bounds both dialing and response headers; zero
// falls back to a 5s default.
func NewESClient(addrs []string, username, password string, reqTimeout time.Duration) (*elasticsearch.Client, error) {
	if reqTimeout <= 0 {
		reqTimeout = defaultESTimeout
	}
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: reqTimeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: reqTimeout}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}
