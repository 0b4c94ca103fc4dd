package main

import "github.com/jesuisfatih/eagledtfprint-sub004/cmd"

func main() {
	cmd.Start()
}
