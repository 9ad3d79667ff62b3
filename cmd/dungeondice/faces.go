package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeondice/internal/gamedata"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "Print what every die face does",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := gamedata.LoadFaces()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Party dice")
		for _, f := range file.Allies {
			fmt.Fprintf(out, "  %s %-9s %s\n", f.Glyph, f.Name, describe(f))
		}
		fmt.Fprintln(out, "Dungeon dice")
		for _, f := range file.Monsters {
			fmt.Fprintf(out, "  %s %-9s %s\n", f.Glyph, f.Name, describe(f))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(facesCmd)
}

func describe(f gamedata.FaceDef) string {
	switch {
	case f.Combat != "" && f.Loot != "":
		return f.Combat + " " + f.Loot
	case f.Combat != "":
		return f.Combat
	default:
		return f.Loot
	}
}
