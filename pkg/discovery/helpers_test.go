package discovery

import (
	"encoding/binary"
	"net"
	"sync"
	"time"
)

func buildResponse(name string, ip net.IP, mac net.HardwareAddr, port uint16) []byte {
	b := make([]byte, respNameOffset+len(name)+1)
	binary.BigEndian.PutUint16(b, QueryHeader)
	b[2] = CmdBroadcast
	copy(b[respMACOffset:], mac)
	copy(b[respIPOffset:], ip.To4())
	binary.BigEndian.PutUint16(b[respPortOffset:], port)
	copy(b[respNameOffset:], name)
	b[len(b)-1] = Checksum(b[2 : len(b)-1]...)
	return b
}

// name22 pads a name so the response is exactly MinResponseSize bytes.
func name22(prefix string) string {
	for len(prefix) < MinResponseSize-respNameOffset-1 {
		prefix += "-"
	}
	return prefix
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type datagram struct {
	data []byte
	src  net.Addr
}

type fakeTransport struct {
	lock     sync.Mutex
	incoming []datagram
	sent     [][]byte
	dsts     []net.Addr
	deadline time.Time
	writeErr error
	readErr  error
}

func (t *fakeTransport) queue(data []byte, src string) {
	t.lock.Lock()
	defer t.lock.Unlock()
	addr, _ := net.ResolveUDPAddr("udp4", src)
	t.incoming = append(t.incoming, datagram{data: data, src: addr})
}

func (t *fakeTransport) WriteTo(b []byte, dst net.Addr) (int, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.writeErr != nil {
		return 0, t.writeErr
	}
	t.sent = append(t.sent, append([]byte(nil), b...))
	t.dsts = append(t.dsts, dst)
	return len(b), nil
}

func (t *fakeTransport) ReadFrom(b []byte) (int, net.Addr, string, error) {
	t.lock.Lock()
	if t.readErr != nil {
		t.lock.Unlock()
		return 0, nil, "", t.readErr
	}
	if len(t.incoming) > 0 {
		d := t.incoming[0]
		t.incoming = t.incoming[1:]
		t.lock.Unlock()
		return copy(b, d.data), d.src, "fake0", nil
	}
	deadline := t.deadline
	t.lock.Unlock()
	time.Sleep(time.Until(deadline))
	return 0, nil, "", timeoutError{}
}

func (t *fakeTransport) SetReadDeadline(deadline time.Time) error {
	t.lock.Lock()
	t.deadline = deadline
	t.lock.Unlock()
	return nil
}

func (t *fakeTransport) Close() error {
	return nil
}

func (t *fakeTransport) sentCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.sent)
}

type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) Observe(ev Event) {
	r.events = append(r.events, ev)
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for n, ev := range r.events {
		types[n] = ev.Type
	}
	return types
}
