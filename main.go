package main

import (
	"fmt"
	"os"

	"github.com/zeu5/pricing-rl/commands"
)

// main entry point to the training, evaluation and serving commands
func main() {
	rootCommand := commands.GetRootCommand()
	if err := rootCommand.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
