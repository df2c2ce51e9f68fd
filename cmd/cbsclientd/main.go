package main

import "github.com/cansec/cbs-client/cmd/cbsclientd/cmd"

func main() {
	cmd.Execute()
}
