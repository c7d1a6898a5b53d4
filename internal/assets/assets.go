// Package assets exposes the embedded data filesystem to the rest of the
// tool. main registers the embed.FS here at startup.
package assets

import "embed"

var efs *embed.FS

func GetData() *embed.FS {
	return efs
}

func UpdateData(d *embed.FS) {
	efs = d
}
