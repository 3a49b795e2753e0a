package main

import "github.com/tempusbreve/zone-helper/cmd"

func main() {
	cmd.Execute()
}
