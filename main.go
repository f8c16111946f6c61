package main

import "github.com/jsphweid/midisong/cmd"

func main() {
	cmd.Execute()
}
