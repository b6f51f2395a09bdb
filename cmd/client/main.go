package main

import "recordkeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
