// Package cmd assembles the kiosk command line interface.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agrovision/kiosk-go/cmd/benchmark"
	catalogcmd "github.com/agrovision/kiosk-go/cmd/catalog"
	"github.com/agrovision/kiosk-go/cmd/realtime"
	"github.com/agrovision/kiosk-go/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kiosk",
		Short: "AgroVision kiosk scanning core",
		Long:  "Runs the product-scanning pipeline of the AgroVision kiosk: detection, stabilization, text recognition and catalog matching.",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		realtime.Command(settings),
		catalogcmd.Command(settings),
		benchmark.Command(settings),
	)

	return rootCmd
}

// setupFlags defines global flags and binds them to viper.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Kiosk.Catalog.Path, "catalog", settings.Kiosk.Catalog.Path, "Path to a YAML catalog file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("kiosk.catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
}
