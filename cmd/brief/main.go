package main

import (
	"fmt"
	"os"

	"github.com/cwu339-pixel/web3-ai-daily-brief/cmd/brief/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
