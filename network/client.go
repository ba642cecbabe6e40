// Package network holds the shared HTTP clients and the JSON request helpers built on them.
package network

import (
	"net/http"
	"time"
)

// Client is the shared HTTP client for AniList, the streaming API and version checks.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 20
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}

// ClientFor returns the fingerprinted client when fingerprint is set, Client otherwise.
func ClientFor(fingerprint bool) *http.Client {
	if fingerprint {
		return FingerprintClient()
	}
	return Client
}
