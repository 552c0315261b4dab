package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Ask a question about your Canvas courses",
	Long: `Send a question to the backend and print the answer.

Example:
  pensum ask when is the next oblig due?
  pensum ask "what is the curriculum for IN2010?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		var resp struct {
			Query  string `json:"query"`
			Result string `json:"result"`
		}
		if err := newBackendClient().post("/qa", map[string]string{"query": question}, &resp); err != nil {
			return err
		}

		fmt.Println(resp.Result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
