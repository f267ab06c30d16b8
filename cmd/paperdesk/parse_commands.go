package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"paperdesk/internal/duplicate"
	"paperdesk/internal/papertitle"
)

type parsedTitle struct {
	Title  string            `json:"title"`
	Parsed papertitle.Parsed `json:"parsed"`
}

func newParseCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "parse <title>...",
		Short:       "Extract metadata from past paper titles",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]parsedTitle, 0, len(args))
			for _, title := range args {
				results = append(results, parsedTitle{Title: title, Parsed: papertitle.Parse(title)})
			}
			if jsonOutput {
				return writeJSON(cmd, results)
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{
					r.Title,
					r.Parsed.CleanTitle,
					r.Parsed.ExamType,
					r.Parsed.Slot,
					r.Parsed.AcademicYear,
					r.Parsed.CourseCode,
					r.Parsed.CourseName,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{
				{header: "Title", wrap: true},
				{header: "Clean title", wrap: true},
				{header: "Exam"},
				{header: "Slot"},
				{header: "Year"},
				{header: "Code"},
				{header: "Course", wrap: true},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCheckCommand() *cobra.Command {
	var fileA, fileB string

	cmd := &cobra.Command{
		Use:         "check <title-a> <title-b>",
		Short:       "Report whether two titles describe the same paper",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := duplicate.Record{Title: args[0], FileRef: strings.TrimSpace(fileA)}
			b := duplicate.Record{Title: args[1], FileRef: strings.TrimSpace(fileB)}

			out := cmd.OutOrStdout()
			if duplicate.IsDuplicate(a, b) {
				printStatus(out, statusWarn, "duplicate: %q and %q describe the same paper", a.Title, b.Title)
				return nil
			}
			printStatus(out, statusOK, "distinct: %q and %q are different papers", a.Title, b.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&fileA, "file-a", "", "File reference of the first paper")
	cmd.Flags().StringVar(&fileB, "file-b", "", "File reference of the second paper")
	return cmd
}
