package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/init-pkg/siot-loader/internal/bootstrap"
)

func main() {
	var params bootstrap.UploadParams
	flag.StringVar(&params.File, "file", "", "path to the SIOT workbook (.xlsx)")
	flag.BoolVar(&params.DryRun, "dry-run", false, "validate and report without creating cards")
	flag.StringVar(&params.Out, "out", "", "optional path for a JSON report")
	flag.Parse()

	if params.File == "" {
		fmt.Fprintln(os.Stderr, "usage: upload -file <workbook.xlsx> [-dry-run] [-out report.json]")
		os.Exit(2)
	}

	bootstrap.RunUpload(params)
}
