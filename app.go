package main

import (
	"github.com/masmgr/folio/cmd"
)

func main() {
	cmd.Run()
}
