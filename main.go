package main

import "yamdb/internal/app/cli"

func main() {
	cli.Execute()
}
