package main

import "github.com/alexiusacademia/gochimney/cmd"

func main() {
	cmd.Execute()
}
