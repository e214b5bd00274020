package mqtt

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/inktools/pkg/discovery"
	fx "github.com/robotalks/inktools/pkg/framework"
)

// PubQueue is the publishing side of Queue.
type PubQueue interface {
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
}

// Publisher announces newly discovered devices as retained messages.
// It implements discovery.Observer and never blocks the scan.
type Publisher struct {
	Queue PubQueue

	lock    sync.Mutex
	pending []pendingPub
}

type pendingPub struct {
	topic string
	token paho.Token
}

// NewPublisher creates a Publisher.
func NewPublisher(q PubQueue) *Publisher {
	return &Publisher{Queue: q}
}

// Observe implements discovery.Observer.
func (p *Publisher) Observe(ev discovery.Event) {
	if ev.Type != discovery.EventDiscovered {
		return
	}
	payload, err := json.Marshal(NewDeviceRecord(ev.Device))
	if err != nil {
		glog.Errorf("encode device %s: %v", ev.Device.Key(), err)
		return
	}
	topic := DeviceTopic(ev.Device.Key())
	token := p.Queue.PubWith(topic, payload, 1, true)
	p.lock.Lock()
	p.pending = append(p.pending, pendingPub{topic: topic, token: token})
	p.lock.Unlock()
}

// Flush waits for outstanding publishes and reports failures.
func (p *Publisher) Flush(timeout time.Duration) error {
	p.lock.Lock()
	pending := p.pending
	p.pending = nil
	p.lock.Unlock()

	var errs fx.AggregatedError
	deadline := time.Now().Add(timeout)
	for _, pub := range pending {
		if !pub.token.WaitTimeout(time.Until(deadline)) {
			errs.Add(fmt.Errorf("publish %s: timeout", pub.topic))
			continue
		}
		if err := pub.token.Error(); err != nil {
			errs.Add(fmt.Errorf("publish %s: %w", pub.topic, err))
		}
	}
	return errs.Aggregate()
}
