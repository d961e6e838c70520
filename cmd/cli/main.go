package main

import (
	"rastreio/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
