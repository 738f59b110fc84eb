package main

import (
	"github.com/rudryyy/SHL/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
