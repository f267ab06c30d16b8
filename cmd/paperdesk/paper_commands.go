package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"paperdesk/internal/ingest"
	"paperdesk/internal/moderation"
	"paperdesk/internal/papers"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var tags []string
	var noArchive bool

	cmd := &cobra.Command{
		Use:   "add <file.pdf>",
		Short: "Upload a past paper for moderation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := ingest.UploadOptions{Title: title, Tags: tags}
			if !noArchive {
				opts.ArchiveDir = cfg.FilesDir()
			}
			return ctx.withStore(func(store *papers.Store) error {
				paper, err := ingest.Upload(cmd.Context(), store, args[0], opts)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added paper %s: %s\n", paper.ID, paper.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Paper title (defaults to the filename)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "Reference the file in place instead of copying it into the data directory")
	return cmd
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "import <listing.html>",
		Short: "Queue every PDF linked from an HTML index page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var base *url.URL
			if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
				parsed, err := url.Parse(trimmed)
				if err != nil {
					return fmt.Errorf("parse --base-url: %w", err)
				}
				base = parsed
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open listing: %w", err)
			}
			defer f.Close()

			links, err := ingest.ParseListing(f, base)
			if err != nil {
				return err
			}
			if len(links) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No PDF links found")
				return nil
			}

			return ctx.withStore(func(store *papers.Store) error {
				imported, err := ingest.ImportListing(cmd.Context(), store, links)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(imported))
				for _, paper := range imported {
					rows = append(rows, []string{paper.ID, paper.Title, paper.SourcePath})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]column{
					{header: "ID"},
					{header: "Title", wrap: true},
					{header: "Source", wrap: true},
				}, rows))
				fmt.Fprintf(out, "Imported %d papers\n", len(imported))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "URL the listing was fetched from, for resolving relative links")
	return cmd
}

type pendingPaper struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	FileRef   string   `json:"file_ref,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func newPendingCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List papers awaiting moderation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *moderation.Service) error {
				pending, err := svc.Pending(cmd.Context())
				if err != nil {
					return err
				}

				views := make([]pendingPaper, 0, len(pending))
				for _, paper := range pending {
					views = append(views, pendingPaper{
						ID:        paper.ID,
						Title:     paper.Title,
						FileRef:   paper.FileRef,
						Tags:      paper.Tags,
						CreatedAt: paper.CreatedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				if jsonOutput {
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(views) == 0 {
					fmt.Fprintln(out, "No papers awaiting moderation")
					return nil
				}
				rows := make([][]string, 0, len(views))
				for _, v := range views {
					rows = append(rows, []string{v.ID, v.Title, strings.Join(v.Tags, ", "), v.CreatedAt})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "ID"},
					{header: "Title", wrap: true},
					{header: "Tags", wrap: true},
					{header: "Uploaded"},
				}, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newApproveCommand(ctx *commandContext) *cobra.Command {
	var allowDuplicate bool

	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending paper after the duplicate check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *moderation.Service) error {
				outcome, err := svc.Approve(cmd.Context(), args[0], moderation.ApproveOptions{AllowDuplicate: allowDuplicate})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if outcome.Status == moderation.StatusDuplicate {
					printStatus(out, statusWarn, "duplicate of %s %q (matched by %s); rerun with --allow-duplicate to approve anyway",
						outcome.DuplicateID, outcome.DuplicateTitle, outcome.Reason)
					return nil
				}
				printStatus(out, statusOK, "approved %s (duplicate override: %s)", args[0], yesNo(allowDuplicate))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&allowDuplicate, "allow-duplicate", false, "Approve even when a duplicate is detected")
	return cmd
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>...",
		Short: "Replace a paper's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			return ctx.withService(func(svc *moderation.Service) error {
				if err := svc.Rename(cmd.Context(), args[0], title); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], strings.TrimSpace(title))
				return nil
			})
		},
	}
}

func newRetitleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "retitle <id>",
		Short: "Rewrite a paper's title into the canonical format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *moderation.Service) error {
				title, changed, err := svc.Retitle(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !changed {
					fmt.Fprintf(out, "Title unchanged: %q\n", title)
					return nil
				}
				fmt.Fprintf(out, "Retitled %s to %q\n", args[0], title)
				return nil
			})
		},
	}
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> <tag>...",
		Short: "Replace a paper's tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *moderation.Service) error {
				tags, err := svc.Tag(cmd.Context(), args[0], args[1:])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s: %s\n", args[0], strings.Join(tags, ", "))
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *moderation.Service) error {
				if err := svc.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
