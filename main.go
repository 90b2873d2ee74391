package main

import "github.com/gaurav-prasanna/archgenie/cmd"

func main() {
	cmd.Execute()
}
