package main

import "github.com/sfstoolbox/sfs-go/cmd"

func main() {
	cmd.Execute()
}
