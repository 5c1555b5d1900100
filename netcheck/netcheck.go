// Package netcheck reports network availability for pre-flight checks.
package netcheck

import (
	"net"
	"sync"
	"time"
)

// Checker reports the current network state. Adapters consult it before
// invoking remote engines.
type Checker interface {
	// Online reports whether the network is reachable at all.
	Online() bool
	// Metered reports whether the active connection is metered
	// (cellular or otherwise pay-per-byte).
	Metered() bool
}

// Static is a fixed-state checker, used for local engines that need no
// network and in tests.
type Static struct {
	IsOnline  bool
	IsMetered bool
}

func (s Static) Online() bool  { return s.IsOnline }
func (s Static) Metered() bool { return s.IsMetered }

// Probe checks reachability by dialing a well-known endpoint, caching the
// result briefly so repeated pre-flight checks stay cheap.
type Probe struct {
	// Target is the host:port to dial. Defaults to a public DNS resolver.
	Target string
	// TTL is how long a probe result is trusted. Defaults to 10 seconds.
	TTL time.Duration
	// Timeout bounds a single dial attempt. Defaults to 3 seconds.
	Timeout time.Duration

	mu      sync.Mutex
	online  bool
	checked time.Time
}

// NewProbe returns a probe checker with defaults applied.
func NewProbe() *Probe {
	return &Probe{
		Target:  "1.1.1.1:53",
		TTL:     10 * time.Second,
		Timeout: 3 * time.Second,
	}
}

func (p *Probe) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.checked) < p.TTL {
		return p.online
	}

	conn, err := net.DialTimeout("tcp", p.Target, p.Timeout)
	if err == nil {
		conn.Close()
	}
	p.online = err == nil
	p.checked = time.Now()
	return p.online
}

// Metered always reports false for the probe checker: without platform
// connectivity metadata there is no way to tell a metered link apart.
func (p *Probe) Metered() bool { return false }
