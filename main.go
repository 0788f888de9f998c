package main

import (
	"log"

	"spiritualgifts/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
