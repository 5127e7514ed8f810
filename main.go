package main

import "github.com/natcat-sim/natcat/cmd"

func main() {
	cmd.Execute()
}
