package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gonavcsg/navmesh"
)

func InfoCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "info <snapshot>",
		Short: "print summary statistics for a navmesh snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}
			nm, err := navmesh.FromData(data)
			if err != nil {
				return err
			}
			walks, steps := nm.LinkCount()
			fmt.Printf("polygons:   %d\n", nm.PolygonCount())
			fmt.Printf("portals:    %d\n", walks)
			fmt.Printf("step links: %d\n", steps)
			verts := 0
			for _, p := range nm.Polygons() {
				verts += len(p.Verts)
			}
			fmt.Printf("vertices:   %d\n", verts)
			return nil
		},
	}
	return c
}
