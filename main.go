// Command wisales downloads the monthly real estate sales files
// published by the Wisconsin Department of Revenue into a local
// directory, skipping months already present.
package main

import (
	"fmt"
	"os"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
