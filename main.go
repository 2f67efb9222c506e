package main

import "host-manager/cmd"

func main() {
	cmd.Execute()
}
