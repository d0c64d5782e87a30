package main

import (
	"github.com/buildgrind/buildgrind/internal/cli"
	"github.com/buildgrind/buildgrind/pkg/maxprocs"
)

func main() {
	maxprocs.Adjust()
	cli.Execute()
}
