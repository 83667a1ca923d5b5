package net

import (
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ConnectionPool spreads requests over a set of equivalent base URLs sharing one http client.
type ConnectionPool struct {
	urls   []string
	client *http.Client
	sync.RWMutex
}

func NewConnectionPool(urls []string, timeout time.Duration) *ConnectionPool {
	cp := &ConnectionPool{
		urls:   make([]string, 0, len(urls)),
		client: &http.Client{Timeout: timeout},
	}
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		u = strings.TrimRight(u, "/")
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		cp.urls = append(cp.urls, u)
	}
	return cp
}

// Get returns a random base URL, or "" when the pool is empty.
func (cp *ConnectionPool) Get() string {
	cp.RLock()
	defer cp.RUnlock()

	if len(cp.urls) == 0 {
		return ""
	}
	return cp.urls[rand.Intn(len(cp.urls))]
}

func (cp *ConnectionPool) Client() *http.Client {
	return cp.client
}
