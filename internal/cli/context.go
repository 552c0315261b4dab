package cli

import (
	"fmt"

	"github.com/mskaar/pensum/internal/canvas"
	"github.com/spf13/cobra"
)

// contextCmd represents the context command
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Show the Canvas data the index is built from",
	Long:  `Fetch courses, assignments and files from the backend and print an overview.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp struct {
			Courses             []canvas.Course `json:"courses"`
			AssignmentsByCourse []struct {
				CourseID    int                 `json:"course_id"`
				Assignments []canvas.Assignment `json:"assignments"`
			} `json:"assignments_by_course"`
			FilesByCourse []struct {
				CourseID int           `json:"course_id"`
				Files    []canvas.File `json:"files"`
			} `json:"files_by_course"`
		}
		if err := newBackendClient().get("/context", &resp); err != nil {
			return err
		}

		assignments := map[int]int{}
		for _, a := range resp.AssignmentsByCourse {
			assignments[a.CourseID] = len(a.Assignments)
		}
		files := map[int]int{}
		for _, f := range resp.FilesByCourse {
			files[f.CourseID] = len(f.Files)
		}

		fmt.Printf("%d courses\n\n", len(resp.Courses))
		for _, course := range resp.Courses {
			fmt.Printf("%s (%s)\n", course.Name, course.CourseCode)
			fmt.Printf("  %d assignments, %d files\n", assignments[course.ID], files[course.ID])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
