package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
)

// Monitor prints device announcements until canceled.
type Monitor struct {
	Queue *Queue
	W     io.Writer
}

// Name implements framework.Named.
func (m *Monitor) Name() string {
	return "monitor"
}

// Run implements framework.Runnable.
func (m *Monitor) Run(ctx context.Context) error {
	token := m.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return err
	}
	defer m.Queue.Close()
	token = m.Queue.Sub(DevicesTopic, m.HandleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe %s: %w", DevicesTopic, err)
	}
	<-ctx.Done()
	return ctx.Err()
}

// HandleMessage prints a single announcement.
func (m *Monitor) HandleMessage(topic string, payload []byte) {
	if len(payload) == 0 {
		fmt.Fprintf(m.W, "%s: cleared\n", topic)
		return
	}
	var rec DeviceRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		glog.Warningf("%s: bad announcement: %v", topic, err)
		return
	}
	fmt.Fprintf(m.W, "%s Device: %s, MAC: %s, IP: %s, Port: %d\n",
		rec.SeenAt.Local().Format(time.Stamp), rec.Name, rec.MAC, rec.IP, rec.Port)
}
