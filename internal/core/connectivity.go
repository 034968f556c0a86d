package core

import (
	"net"
	"time"
)

// ConnectivityProbe is a cheap liveness heuristic used to pick a provider
// tier. A false reading only biases tier selection, it never breaks a
// request, so any dial, DNS or timeout error simply reads as offline.
type ConnectivityProbe struct {
	addr    string
	timeout time.Duration
}

func NewConnectivityProbe(addr string, timeout time.Duration) *ConnectivityProbe {
	if addr == "" {
		addr = "1.1.1.1:80"
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	return &ConnectivityProbe{addr: addr, timeout: timeout}
}

// Online reports whether a short TCP connection to the probe address
// succeeds. It never returns an error.
func (p *ConnectivityProbe) Online() bool {
	conn, err := net.DialTimeout("tcp", p.addr, p.timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
