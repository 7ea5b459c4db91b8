package main

import (
	"github.com/byxorna/sieve/cmd"
)

func main() {
	cmd.Execute()
}
