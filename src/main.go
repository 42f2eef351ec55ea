package main

import (
	"github.com/contre95/lyricfetch/src/features/cli"
)

func main() {
	cli.Execute()
}
