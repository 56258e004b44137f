package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gonavcsg/config"
	"gonavcsg/logger"
	"gonavcsg/navmesh"
)

func BuildCmd() *cobra.Command {
	var configFile string
	var sceneFile string
	var outFile string
	c := &cobra.Command{
		Use:   "build",
		Short: "build a navmesh from a scene file and write the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			log := logger.Init(cfg.Log)
			defer logger.Sync()

			navCfg := cfg.Navmesh()
			navCfg.Logger = log

			geo, err := loadScene(sceneFile, navCfg.Tolerance)
			if err != nil {
				return err
			}
			nm, err := navmesh.Build(geo, navCfg)
			if err != nil {
				return err
			}

			data := nm.Data()
			if err := os.WriteFile(outFile, data, 0644); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}
			walks, steps := nm.LinkCount()
			log.Info("snapshot written",
				zap.String("path", outFile),
				zap.Int("bytes", len(data)),
				zap.Int("polygons", nm.PolygonCount()),
				zap.Int("portals", walks),
				zap.Int("step_links", steps))
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "hjson config file")
	c.Flags().StringVar(&sceneFile, "scene", "scene.json", "scene geometry file")
	c.Flags().StringVar(&outFile, "out", "navmesh.bin", "output snapshot path")
	return c
}
