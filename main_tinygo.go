//go:build tinygo

package main

import (
	"vhub/app"
	"vhub/hal"
)

func main() {
	app.Run(hal.New())
}
