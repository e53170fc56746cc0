package main

import (
	"github.com/caredash/impactboard/cmd"
)

func main() {
	cmd.Execute()
}
