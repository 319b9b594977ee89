package main

import (
	"github.com/adderan/cactusRepeats/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
