package main

import "github.com/texcat/texcat/cmd/texcat/cmd"

func main() {
	cmd.Execute()
}
