package main

import (
	"fmt"
	"io"
	"os"

	"github.com/AmirOssanloo/pkg-sits-node-service/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := newRootCmd(info).Execute(); err != nil {
		os.Exit(1)
	}
}

func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	fmt.Fprintf(w, "Build version: %s\n", info.BuildVersion())
	fmt.Fprintf(w, "Build date: %s\n", info.BuildDate())
	fmt.Fprintf(w, "Build commit: %s\n", info.BuildCommit())
}
