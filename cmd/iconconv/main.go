package main

import (
	"flag"
	"fmt"

	"github.com/golang/glog"

	"github.com/robotalks/inktools/pkg/icon"
)

//go-build: CGO_ENABLED=0

func init() {
	icon.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	results, err := icon.NewConfig().NewConverter().Run()
	for _, res := range results {
		fmt.Printf("%s -> %s\n", res.Source, res.Output)
	}
	if err != nil {
		glog.Exit(err)
	}
}
