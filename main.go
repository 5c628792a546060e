package main

import (
	"stock-alert/cmd"

	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
