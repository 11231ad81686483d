// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

// Command biblio is the operations CLI for the Biblio catalog: schema
// setup, sample data, searches, lending and statistics against a running
// MongoDB deployment.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
