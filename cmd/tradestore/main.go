package main

import "trading-bot-store-go/internal/cli"

func main() {
	cli.Execute()
}
