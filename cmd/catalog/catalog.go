// Package catalog implements catalog inspection commands.
package catalog

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/datastore"
)

// Command returns the catalog command with its subcommands.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the product catalog",
	}
	cmd.AddCommand(listCommand(settings), syncCommand(settings))
	return cmd
}

func listCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Load(settings.Kiosk.Catalog.Path)
			for _, entry := range cat.Entries() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %-28s %s\n", entry.ID, entry.Name, entry.Company)
				if len(entry.Crops) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%20s crops: %s\n", "", strings.Join(entry.Crops, ", "))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries\n", cat.Len())
			return nil
		},
	}
}

func syncCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Write the catalog snapshot to the datastore",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !settings.Kiosk.Datastore.Enabled {
				return fmt.Errorf("datastore is disabled in configuration")
			}
			cat := catalog.Load(settings.Kiosk.Catalog.Path)
			store := datastore.NewSQLiteStore(settings.Kiosk.Datastore.Path)
			if err := store.Open(); err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveProducts(cat.Entries()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d entries to %s\n", cat.Len(), settings.Kiosk.Datastore.Path)
			return nil
		},
	}
}
