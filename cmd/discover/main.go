package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/inktools/pkg/discovery"
	fx "github.com/robotalks/inktools/pkg/framework"
	"github.com/robotalks/inktools/pkg/mqtt"
)

var mqttURL string

func init() {
	if val := os.Getenv("INK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	discovery.SetupFlags()
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL to announce devices to, e.g. mqtt://host:1883/ink/")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	session, err := discovery.NewConfig().NewSession(context.Background())
	if err != nil {
		glog.Exit(err)
	}
	defer session.Transport.Close()

	observers := discovery.Observers{&discovery.Printer{W: os.Stdout}}
	var publisher *mqtt.Publisher
	if mqttURL != "" {
		q, err := mqtt.NewQueueFromURL(mqttURL)
		if err != nil {
			glog.Exitf("invalid MQTT URL: %v", err)
		}
		if token := q.Connect(); token.Wait() && token.Error() != nil {
			glog.Exitf("connect MQTT: %v", token.Error())
		}
		defer q.Close()
		publisher = mqtt.NewPublisher(q)
		observers = append(observers, publisher)
	}
	session.Observer = observers

	runErr := fx.NewRunner().HandleSignals().Go(session).Wait()
	if err := discovery.WriteSummary(os.Stdout, session.Registry.Devices()); err != nil {
		glog.Error(err)
	}
	if publisher != nil {
		if err := publisher.Flush(5 * time.Second); err != nil {
			glog.Error(err)
		}
	}
	if runErr != nil {
		glog.Exit(runErr)
	}
}
