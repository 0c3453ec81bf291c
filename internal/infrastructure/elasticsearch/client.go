package elasticsearch

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
)

type ClientConfig struct {
	Addrs    []string
	Username string
	Password string
	// Timeout bounds dialing and waiting for response headers.
	Timeout time.Duration
}

// NewClient builds a client for the account index. Transient gateway errors are retried.
func NewClient(cc ClientConfig) (*es.Client, error) {
	timeout := cc.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return es.NewClient(es.Config{
		Addresses:     cc.Addrs,
		Username:      cc.Username,
		Password:      cc.Password,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    2,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	})
}
