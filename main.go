package main

import "github.com/docspec/docspec/cmd"

func main() {
	cmd.Execute()
}
