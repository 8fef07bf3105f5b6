package main

import "github.com/beka-birhanu/vinom-wayout/cmd"

func main() {
	cmd.Execute()
}
