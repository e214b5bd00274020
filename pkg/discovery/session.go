package discovery

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/golang/glog"
)

const (
	// DefaultDuration is the length of a scan.
	DefaultDuration = 15 * time.Second
	// DefaultTimeout bounds each receive attempt.
	DefaultTimeout = time.Second

	recvBufSize = 1500
)

// State is the phase of a scan session.
type State int

const (
	// StateIdle means the session hasn't started.
	StateIdle State = iota
	// StateScanning means queries are being sent and responses collected.
	StateScanning
	// StateReporting is terminal: the scan window has closed.
	StateReporting
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateReporting:
		return "reporting"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EventType classifies what happened to a received datagram.
type EventType int

const (
	// EventDiscovered is the first response from an address.
	EventDiscovered EventType = iota
	// EventConflict is a later response from a known address whose name or
	// port differs from the recorded one.
	EventConflict
	// EventRepeated is a later response identical to the recorded one.
	EventRepeated
	// EventDiscarded is a datagram that failed to parse.
	EventDiscarded
)

// Event is reported to the Observer for every candidate response.
type Event struct {
	Type EventType
	// Device is the responder parsed from this datagram. nil if discarded.
	Device *Device
	// Known is the registry entry for the address.
	Known  *Device
	Source net.Addr
	Err    error
}

// Observer receives scan events.
type Observer interface {
	Observe(Event)
}

// ObserverFunc is the func form of Observer.
type ObserverFunc func(Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

// Observers fans out events to multiple observers.
type Observers []Observer

// Observe implements Observer.
func (o Observers) Observe(ev Event) {
	for _, ob := range o {
		ob.Observe(ev)
	}
}

// Session is a single scan. It owns the transport for the duration of the
// scan, the deadline and the registry of devices found.
type Session struct {
	Transport Transport
	Target    net.Addr
	Duration  time.Duration
	Timeout   time.Duration
	Query     Query
	Registry  *Registry
	Observer  Observer

	state    State
	deadline time.Time
	buf      []byte
}

// NewSession creates a Session with default timing.
func NewSession(t Transport, target net.Addr) *Session {
	return &Session{
		Transport: t,
		Target:    target,
		Duration:  DefaultDuration,
		Timeout:   DefaultTimeout,
		Query:     NewQuery(),
		Registry:  NewRegistry(),
	}
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Deadline returns when scanning ends. Zero before Run.
func (s *Session) Deadline() time.Time {
	return s.deadline
}

// Name implements framework.Named.
func (s *Session) Name() string {
	return "scan"
}

// Run implements framework.Runnable. It blocks until the scan window closes
// or ctx is canceled, and leaves the session in StateReporting either way.
func (s *Session) Run(ctx context.Context) error {
	if s.state != StateIdle {
		return &StateError{State: s.state, Op: "run"}
	}
	if s.Registry == nil {
		s.Registry = NewRegistry()
	}
	if s.buf == nil {
		s.buf = make([]byte, recvBufSize)
	}
	s.state = StateScanning
	defer func() { s.state = StateReporting }()

	s.deadline = time.Now().Add(s.duration())
	glog.V(1).Infof("scanning %v until %s", s.Target, s.deadline.Format(time.RFC3339))
	for time.Now().Before(s.deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.send(); err != nil {
			return err
		}
		if err := s.receive(); err != nil {
			return err
		}
	}
	glog.V(1).Infof("scan finished, %d device(s)", s.Registry.Len())
	return nil
}

func (s *Session) duration() time.Duration {
	if s.Duration > 0 {
		return s.Duration
	}
	return DefaultDuration
}

func (s *Session) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Session) send() error {
	if _, err := s.Transport.WriteTo(s.Query.Bytes(), s.Target); err != nil {
		return fmt.Errorf("send query to %v: %w", s.Target, err)
	}
	return nil
}

func (s *Session) receive() error {
	if err := s.Transport.SetReadDeadline(time.Now().Add(s.timeout())); err != nil {
		return fmt.Errorf("set read deadline: %w", err)
	}
	n, src, ifname, err := s.Transport.ReadFrom(s.buf)
	if err != nil {
		if isTimeout(err) {
			return nil
		}
		return fmt.Errorf("receive: %w", err)
	}
	s.handle(s.buf[:n], src, ifname)
	return nil
}

func (s *Session) handle(b []byte, src net.Addr, ifname string) {
	if len(b) < MinResponseSize {
		glog.V(3).Infof("ignore %d bytes from %v", len(b), src)
		return
	}
	resp, err := ParseResponse(b)
	if err != nil {
		glog.Warningf("discard response from %v: %v", src, err)
		s.notify(Event{Type: EventDiscarded, Source: src, Err: err})
		return
	}
	dev := &Device{Response: *resp, Interface: ifname, Source: src, SeenAt: time.Now()}
	known, added := s.Registry.Add(dev)
	ev := Event{Device: dev, Known: known, Source: src}
	switch {
	case added:
		ev.Type = EventDiscovered
	case known.Name != dev.Name || known.Port != dev.Port:
		ev.Type = EventConflict
	default:
		ev.Type = EventRepeated
		glog.V(2).Infof("repeated response from %s", dev.Key())
	}
	s.notify(ev)
}

func (s *Session) notify(ev Event) {
	if s.Observer != nil {
		s.Observer.Observe(ev)
	}
}
