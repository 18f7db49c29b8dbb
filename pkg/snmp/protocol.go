package snmp

import (
	"fmt"
	"math/rand"
	"net"
	"strconv"
	"strings"
	"time"
)

type protocol struct {
	community           string
	version             int
	bufferSize          int
	timeout             time.Duration
	retries             int
	localAddress        string
	fixedWidthRequestID bool
}

type ProtocolOption func(p *protocol) error

func NewProtocol(options ...ProtocolOption) (Protocol, error) {
	p := &protocol{
		version:    -1,
		bufferSize: 4096,
		timeout:    2 * time.Second,
		retries:    1,
	}
	for _, option := range options {
		err := option(p)
		if err != nil {
			return nil, err
		}
	}
	if p.version == -1 {
		return nil, fmt.Errorf("version is required")
	}
	return p, nil
}

func (p *protocol) Dial(target string) (Connection, error) {
	parts := strings.Split(target, ":")
	port := DefaultPort
	var err error

	switch len(parts) {
	case 1:
		//all good nothing to see here
	case 2:
		port, err = strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid port: %v", err)
		}
		target = parts[0]
	default:
		//TODO handle IPV6 literals
		return nil, fmt.Errorf("invalid target: %s", target)
	}

	ip, err := net.ResolveIPAddr("ip", target)
	if err != nil {
		return nil, &TransportError{Op: "resolve", Target: target, Err: err}
	}

	// An explicit local address pins the source interface; without it the OS
	// picks whatever the default route says, which on multi-homed hosts may
	// not be able to reach the printer's subnet.
	var localAddr *net.UDPAddr
	if p.localAddress != "" {
		localIP, err := net.ResolveIPAddr("ip", p.localAddress)
		if err != nil {
			return nil, &TransportError{Op: "resolve local address", Target: p.localAddress, Err: err}
		}
		localAddr = &net.UDPAddr{IP: localIP.IP}
	}

	remoteAddr := net.UDPAddr{
		IP:   ip.IP,
		Port: port,
	}
	conn, err := net.DialUDP("udp", localAddr, &remoteAddr)
	if err != nil {
		return nil, &TransportError{Op: "dial", Target: fmt.Sprintf("%s:%d", target, port), Err: err}
	}

	return &connection{
		protocol: p,
		conn:     conn,
		buffer:   make([]byte, p.bufferSize),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func WithV2(community string) ProtocolOption {
	return func(p *protocol) error {
		if community == "" {
			return fmt.Errorf("community is empty")
		}
		p.community = community
		p.version = v2c
		return nil
	}
}

func WithTimeout(timeout time.Duration) ProtocolOption {
	return func(p *protocol) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		p.timeout = timeout
		return nil
	}
}

func WithRetries(retries int) ProtocolOption {
	return func(p *protocol) error {
		if retries < 0 {
			return fmt.Errorf("retries must not be negative")
		}
		p.retries = retries
		return nil
	}
}

// WithLocalAddress binds the socket's local endpoint before connecting.
func WithLocalAddress(address string) ProtocolOption {
	return func(p *protocol) error {
		p.localAddress = address
		return nil
	}
}

func WithBufferSize(size int) ProtocolOption {
	return func(p *protocol) error {
		if size < 512 {
			return fmt.Errorf("buffer size %d is too small", size)
		}
		p.bufferSize = size
		return nil
	}
}

// WithFixedWidthRequestID switches request-id encoding from strict minimal
// BER to a fixed 4-byte INTEGER, for embedded agents that reject the former.
func WithFixedWidthRequestID() ProtocolOption {
	return func(p *protocol) error {
		p.fixedWidthRequestID = true
		return nil
	}
}
