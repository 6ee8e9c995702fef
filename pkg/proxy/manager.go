package proxy

import (
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// DefaultUserAgent is sent when no user agent pool is configured.
// clone.nl rejects requests with an empty agent.
const DefaultUserAgent = "Mozilla/5.0"

// Manager handles the rotation of proxies and user agents.
type Manager struct {
	proxies    []string
	userAgents []string
	mu         sync.Mutex
	proxyIndex int
	rnd        *rand.Rand
}

// NewManager creates a Manager. Empty entries are ignored; with no user
// agents configured DefaultUserAgent is used.
func NewManager(proxies, userAgents []string) *Manager {
	m := &Manager{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, p := range proxies {
		if p != "" {
			m.proxies = append(m.proxies, p)
		}
	}
	for _, ua := range userAgents {
		if ua != "" {
			m.userAgents = append(m.userAgents, ua)
		}
	}
	if len(m.userAgents) == 0 {
		m.userAgents = []string{DefaultUserAgent}
	}
	return m
}

// GetProxy returns a proxy URL from the list, rotating sequentially.
func (m *Manager) GetProxy() string {
	if len(m.proxies) == 0 {
		return "" // No proxy
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	proxy := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return proxy
}

// GetUserAgent returns a random user agent string. It is never empty.
func (m *Manager) GetUserAgent() string {
	if len(m.userAgents) == 1 {
		return m.userAgents[0]
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userAgents[m.rnd.Intn(len(m.userAgents))]
}

// ProxyFunc is an http.Transport.Proxy that rotates through the configured
// proxies, or connects directly when there are none.
func (m *Manager) ProxyFunc(*http.Request) (*url.URL, error) {
	p := m.GetProxy()
	if p == "" {
		return nil, nil
	}
	return url.Parse(p)
}
