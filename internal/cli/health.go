package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health status",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Status           string `json:"status"`
			VectorDBReady    bool   `json:"vector_db_ready"`
			DocumentsLoaded  int    `json:"documents_loaded"`
			OpenAIConfigured bool   `json:"openai_configured"`
			CanvasConfigured bool   `json:"canvas_configured"`
			Message          string `json:"message"`
		}
		if err := newBackendClient().get("/health", &resp); err != nil {
			return err
		}

		fmt.Printf("status:            %s\n", resp.Status)
		fmt.Printf("vector database:   %s\n", readiness(resp.VectorDBReady))
		fmt.Printf("documents loaded:  %d\n", resp.DocumentsLoaded)
		fmt.Printf("openai configured: %v\n", resp.OpenAIConfigured)
		fmt.Printf("canvas configured: %v\n", resp.CanvasConfigured)
		if resp.Message != "" {
			fmt.Printf("\n%s\n", resp.Message)
		}
		return nil
	},
}

func readiness(ready bool) string {
	if ready {
		return "ready"
	}
	return "not ready"
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
