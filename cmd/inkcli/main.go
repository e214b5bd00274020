package main

import (
	"github.com/robotalks/inktools/pkg/cli/sh"
	"github.com/robotalks/inktools/pkg/discovery"
	"github.com/robotalks/inktools/pkg/icon"
)

//go-build: CGO_ENABLED=0

func init() {
	discovery.SetupFlags()
	icon.SetupFlags()
}

func main() {
	sh.Main()
}
