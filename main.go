package main

import (
	"github.com/Driw/streamio/cmd"
)

func main() {
	cmd.Execute()
}
