package main

import "github.com/Zolinad/dsportfolio/cmd"

func main() {
	cmd.Execute()
}
