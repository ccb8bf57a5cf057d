package main

import "github.com/nfrund/hallrush/cmd/hallrush-cli/cmd"

func main() {
	cmd.Execute()
}
