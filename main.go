package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/totara/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
