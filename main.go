package main

import "github.com/campushub/records-portal/cmd"

func main() {
	cmd.Execute()
}
