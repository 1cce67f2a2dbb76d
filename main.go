package main

import (
	"os"

	"github.com/yavemu/bookadmin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
