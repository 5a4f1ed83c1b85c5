package main

import "github.com/deppfellow/venues/cmd/venues/cmd"

func main() {
	cmd.Execute()
}
