package main

import (
	"github.com/lehigh-university-libraries/zotero-xml/cmd"

	// Register format plugins
	_ "github.com/lehigh-university-libraries/zotero-xml/format/dublincore"
	_ "github.com/lehigh-university-libraries/zotero-xml/format/mods"
)

func main() {
	cmd.Execute()
}
