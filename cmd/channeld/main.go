package main

import "github.com/talkincode/channelhub/cmd/channeld/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
