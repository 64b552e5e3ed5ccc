package main

import "github.com/alexiusacademia/gomember/cmd"

func main() {
	cmd.Execute()
}
