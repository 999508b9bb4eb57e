package main

import "mdvault/cmd/mdvault-cli/cmd"

func main() {
	cmd.Execute()
}
