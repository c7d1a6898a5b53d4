package main

import (
	"embed"

	cmd "github.com/quality-tools/qreport/cmd/qreport"
	"github.com/quality-tools/qreport/internal/assets"
)

//go:embed data/templates
var vfs embed.FS

func main() {
	assets.UpdateData(&vfs)
	cmd.Execute()
}
