package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// debugCmd represents the debug command
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "List the metadata of every indexed document",
	RunE: func(cmd *cobra.Command, args []string) error {
		var metas []struct {
			Kind     string `json:"type"`
			CourseID int    `json:"course_id"`
			ItemID   int    `json:"item_id"`
		}
		if err := newBackendClient().get("/debug/docs", &metas); err != nil {
			return err
		}

		if len(metas) == 0 {
			fmt.Println("no documents indexed")
			return nil
		}
		for _, m := range metas {
			if m.ItemID != 0 {
				fmt.Printf("%-10s course=%d item=%d\n", m.Kind, m.CourseID, m.ItemID)
			} else {
				fmt.Printf("%-10s course=%d\n", m.Kind, m.CourseID)
			}
		}
		fmt.Printf("\n%d documents\n", len(metas))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
