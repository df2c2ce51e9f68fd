package main

import "github.com/cansec/cbs-client/cmd/cbsconfigc/cmd"

func main() {
	cmd.Execute()
}
