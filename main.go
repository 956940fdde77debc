package main

import (
	"javiradio/cmd"
)

func main() {
	cmd.Execute()
}
