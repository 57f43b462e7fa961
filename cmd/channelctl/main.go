package main

import "github.com/talkincode/channelhub/cmd/channelctl/cmd"

func main() {
	cmd.Execute()
}
