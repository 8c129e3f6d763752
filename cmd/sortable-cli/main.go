package main

import "sortable/cmd/sortable-cli/cmd"

func main() {
	cmd.Execute()
}
