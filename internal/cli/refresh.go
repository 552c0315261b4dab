package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// refreshCmd represents the refresh command
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the index from Canvas",
	Long:  `Ask the backend to refetch Canvas content and re-embed everything. This can take a while for many courses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Refreshing embeddings, this can take a while...")

		var resp struct {
			Message         string `json:"message"`
			DocumentsLoaded int    `json:"documents_loaded"`
		}
		if err := newBackendClient().post("/refresh-embeddings", nil, &resp); err != nil {
			return err
		}

		fmt.Printf("%s (%d documents)\n", resp.Message, resp.DocumentsLoaded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
