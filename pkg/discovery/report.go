package discovery

import (
	"fmt"
	"io"
)

// Printer prints devices as they are discovered.
type Printer struct {
	W io.Writer
}

// Observe implements Observer.
func (p *Printer) Observe(ev Event) {
	switch ev.Type {
	case EventDiscovered:
		fmt.Fprintln(p.W, ev.Device.String())
	case EventConflict:
		fmt.Fprintf(p.W, "%s (already known as %s)\n", ev.Device.String(), ev.Known.Name)
	}
}

// WriteSummary prints the enumerated list of distinct devices.
func WriteSummary(w io.Writer, devs []*Device) error {
	if len(devs) == 0 {
		_, err := fmt.Fprintln(w, "No devices found")
		return err
	}
	if _, err := fmt.Fprintf(w, "Found %d device(s):\n", len(devs)); err != nil {
		return err
	}
	for n, dev := range devs {
		line := fmt.Sprintf("%3d. %s, MAC: %s, IP: %s, Port: %d", n+1, dev.Name, dev.HardwareAddr, dev.IP, dev.Port)
		if dev.Interface != "" {
			line += ", via " + dev.Interface
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
