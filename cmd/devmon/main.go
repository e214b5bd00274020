package main

import (
	"flag"
	"os"

	"github.com/golang/glog"

	fx "github.com/robotalks/inktools/pkg/framework"
	"github.com/robotalks/inktools/pkg/mqtt"
)

var (
	mqttURL = "mqtt://localhost:1883/ink/"
)

func init() {
	if val := os.Getenv("INK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exit(err)
	}
	mon := &mqtt.Monitor{Queue: q, W: os.Stdout}
	if err := fx.NewRunner().HandleSignals().Go(mon).Wait(); err != nil {
		glog.Exit(err)
	}
}
