package main

import "adtsetup/cmd/adtsetup/cmd"

func main() {
	cmd.Execute()
}
