package discovery

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

const (
	// QueryHeader is the fixed leading word of a query.
	QueryHeader uint16 = 0xffff
	// CmdBroadcast is the command code asking devices to identify.
	CmdBroadcast byte = 0x12
	// DefaultPort is the well-known port devices listen on.
	DefaultPort = 46000

	// QuerySize is the encoded size of a query.
	QuerySize = 5
	// MinResponseSize is the minimum size of a datagram treated as a response.
	// Anything shorter is noise.
	MinResponseSize = 41

	queryPayloadLen byte = 3

	respMACOffset  = 5
	respIPOffset   = 11
	respPortOffset = 15
	respNameOffset = 18
)

// Checksum sums the bytes, truncated to 8 bits.
func Checksum(data ...byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Query is the broadcast request.
type Query struct {
	Cmd byte
	Len byte
}

// NewQuery creates the standard broadcast query.
func NewQuery() Query {
	return Query{Cmd: CmdBroadcast, Len: queryPayloadLen}
}

// Checksum calculates the checksum byte of the query.
func (q Query) Checksum() byte {
	return Checksum(q.Cmd, q.Len)
}

// Bytes returns encoded bytes for sending.
func (q Query) Bytes() []byte {
	b := make([]byte, QuerySize)
	binary.BigEndian.PutUint16(b, QueryHeader)
	b[2], b[3], b[4] = q.Cmd, q.Len, q.Checksum()
	return b
}

// WriteTo writes encoded bytes.
func (q Query) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(q.Bytes())
	return int64(n), err
}

// Response is the parsed answer from a device.
type Response struct {
	HardwareAddr net.HardwareAddr
	IP           net.IP
	Port         uint16
	Name         string
}

// ParseResponse decodes a response datagram.
func ParseResponse(b []byte) (*Response, error) {
	if len(b) < MinResponseSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortResponse, len(b))
	}
	nameBytes := b[respNameOffset : len(b)-1]
	for _, c := range nameBytes {
		if c >= 0x80 {
			return nil, fmt.Errorf("%w: byte 0x%02x", ErrNonASCIIName, c)
		}
	}
	r := &Response{
		HardwareAddr: make(net.HardwareAddr, 6),
		IP:           make(net.IP, net.IPv4len),
		Port:         binary.BigEndian.Uint16(b[respPortOffset:]),
		Name:         string(nameBytes),
	}
	copy(r.HardwareAddr, b[respMACOffset:respIPOffset])
	copy(r.IP, b[respIPOffset:respPortOffset])
	return r, nil
}

// String formats the response the way it is printed on discovery.
func (r *Response) String() string {
	return fmt.Sprintf("Device: %s, MAC: %s, IP: %s, Port: %d",
		r.Name, r.HardwareAddr, r.IP, r.Port)
}
