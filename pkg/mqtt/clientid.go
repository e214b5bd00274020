package mqtt

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const appID = "inktools"

// DefaultClientID derives a stable client ID from the machine ID.
// It falls back to the hostname when the machine ID is unavailable.
func DefaultClientID() string {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		glog.V(1).Infof("machine id unavailable: %v", err)
		if id, err = os.Hostname(); err != nil {
			id = "unknown"
		}
	}
	if len(id) > 16 {
		id = id[:16]
	}
	return appID + ":" + id
}
