package httpclient

import (
	"net"
	"net/http"
	"time"
)

type Config struct {
	// Total timeout for one probe request, body included. /stress is slow by
	// construction, so keep this generous. A context deadline can still override it.
	Timeout time.Duration

	DialTimeout     time.Duration
	KeepAlive       time.Duration
	ResponseHeader  time.Duration
	IdleConnTimeout time.Duration

	// Should be at least the probe concurrency, otherwise connections churn.
	MaxIdleConnsPerHost int
}

func DefaultConfig() Config {
	return Config{
		Timeout:             60 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		ResponseHeader:      60 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 32,
	}
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		MaxIdleConns:        cfg.MaxIdleConnsPerHost,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		ResponseHeaderTimeout: cfg.ResponseHeader,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
