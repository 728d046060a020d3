package main

import "github.com/jarthianur/theia-builder/internal/cmd"

func main() {
	cmd.Execute()
}
