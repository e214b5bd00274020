package mqtt

import (
	"time"

	"github.com/robotalks/inktools/pkg/discovery"
)

// DevicesTopic is the topic filter of device announcements.
const DevicesTopic = "devices/+"

// DeviceRecord is the JSON payload of a device announcement.
type DeviceRecord struct {
	Name      string    `json:"name"`
	MAC       string    `json:"mac"`
	IP        string    `json:"ip"`
	Port      uint16    `json:"port"`
	Interface string    `json:"interface,omitempty"`
	SeenAt    time.Time `json:"seen_at"`
}

// NewDeviceRecord converts a discovered device. IP is the registry key, the
// same address the device topic is named after.
func NewDeviceRecord(dev *discovery.Device) DeviceRecord {
	return DeviceRecord{
		Name:      dev.Name,
		MAC:       dev.HardwareAddr.String(),
		IP:        dev.Key(),
		Port:      dev.Port,
		Interface: dev.Interface,
		SeenAt:    dev.SeenAt.UTC(),
	}
}

// DeviceTopic returns the topic a device is announced on.
func DeviceTopic(key string) string {
	return "devices/" + key
}
