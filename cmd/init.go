package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marcus/splitview/internal/config"
	"github.com/marcus/splitview/internal/output"
	"github.com/marcus/splitview/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a .splitview directory in the current project",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()

		st, err := store.Initialize(dir)
		if err != nil {
			output.Error("initialize store: %v", err)
			return err
		}
		defer st.Close()

		cfg, err := config.Load(dir)
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}
		if err := config.Save(dir, cfg); err != nil {
			output.Error("save config: %v", err)
			return err
		}

		seed, _ := cmd.Flags().GetBool("seed")
		if seed {
			demo := &store.Layout{
				ID:           "demo",
				Orientation:  "vertical",
				FirstSize:    "30%",
				FirstMinSize: "100px",
			}
			if err := st.SaveLayout(demo); err != nil {
				output.Error("seed demo layout: %v", err)
				return err
			}
			if err := config.SetDefaultLayout(dir, demo.ID); err != nil {
				output.Error("set default layout: %v", err)
				return err
			}
			output.Info("Seeded layout %q (30%% sidebar, flex content)", demo.ID)
		}

		output.Success("Initialized .splitview in %s", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("seed", false, "Create a demo layout and make it the default")
}
