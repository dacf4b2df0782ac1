package main

import "github.com/hitminer/bucket-sync/cmd"

func main() {
	cmd.Execute()
}
