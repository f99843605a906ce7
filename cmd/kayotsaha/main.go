package main

import "github.com/kayotsaha/authweb/cmd/kayotsaha/cmd"

func main() {
	cmd.Execute()
}
