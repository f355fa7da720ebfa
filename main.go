package main

import "github.com/spoke-dev/spoke/internal/cli"

func main() {
	cli.Execute()
}
