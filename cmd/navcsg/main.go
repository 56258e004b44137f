package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const VERSION = "1.0.0"

func main() {
	root := &cobra.Command{
		Use:     "navcsg",
		Short:   "CSG navmesh generator and path query tool",
		Version: VERSION,
	}
	root.AddCommand(BuildCmd())
	root.AddCommand(ServeCmd())
	root.AddCommand(InfoCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
