//go:build tinygo && baremetal

package main

import (
	"juicy/app"
	"juicy/hal"
)

func main() {
	app.Run(hal.New())
}
