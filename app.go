package main

import "github.com/masmgr/timemachine-go/cmd"

func main() {
	cmd.Run()
}
