package discovery

import (
	"net"
	"time"
)

// Device is a registry entry for a responder.
type Device struct {
	Response
	// Interface is the local interface the first response arrived on.
	// Empty when the platform doesn't report it.
	Interface string
	// Source is the sender address of the first response.
	Source net.Addr
	// SeenAt is when the first response was received.
	SeenAt time.Time
}

// Key returns the address the device is deduplicated by.
// It's the address the device reports, or the datagram sender when the
// device reports an unspecified address.
func (d *Device) Key() string {
	if d.IP != nil && !d.IP.IsUnspecified() {
		return d.IP.String()
	}
	if udp, ok := d.Source.(*net.UDPAddr); ok {
		return udp.IP.String()
	}
	if d.Source != nil {
		return d.Source.String()
	}
	return ""
}

// Registry records distinct devices in discovery order.
// The first device recorded for an address wins.
type Registry struct {
	devices map[string]*Device
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{devices: make(map[string]*Device)}
}

// Add records the device unless its address is already known.
// It returns the recorded device for the address and whether it was added.
func (r *Registry) Add(dev *Device) (*Device, bool) {
	key := dev.Key()
	if existing, ok := r.devices[key]; ok {
		return existing, false
	}
	r.devices[key] = dev
	r.order = append(r.order, key)
	return dev, true
}

// Lookup finds the device recorded for an address.
func (r *Registry) Lookup(addr string) *Device {
	return r.devices[addr]
}

// Len returns the number of distinct devices.
func (r *Registry) Len() int {
	return len(r.order)
}

// Devices lists recorded devices in discovery order.
func (r *Registry) Devices() []*Device {
	devs := make([]*Device, len(r.order))
	for n, key := range r.order {
		devs[n] = r.devices[key]
	}
	return devs
}
