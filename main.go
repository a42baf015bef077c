package main

import (
	"log"

	"github.com/thiagokokada/tabfilter-go/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("tabfilter: %v", err)
	}
}
