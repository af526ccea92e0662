package main

import "github.com/mhristof/ghup/cmd"

func main() {
	cmd.Execute()
}
