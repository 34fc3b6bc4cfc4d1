package main

import "github.com/TCC-Pucpr/fed-inspirasom/cmd"

func main() {
	cmd.Execute()
}
