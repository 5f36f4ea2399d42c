package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sidemail/sidemail-go"
)

func newEmailCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Send, search and manage emails",
	}

	cmd.AddCommand(newEmailSendCmd(opts))
	cmd.AddCommand(newEmailSearchCmd(opts))
	cmd.AddCommand(newEmailGetCmd(opts))
	cmd.AddCommand(newEmailDeleteCmd(opts))

	return cmd
}

func newEmailSendCmd(opts *globalOptions) *cobra.Command {
	var (
		req         sidemail.SendEmailRequest
		props       map[string]string
		attachments []string
		scheduledAt string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send an email",
		Example: `  sidemail email send --to john@example.com --from hello@example.com \
    --template Welcome --prop name=John --attach invoice.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.TemplateProps = toProps(props)

			if scheduledAt != "" {
				t, err := time.Parse(time.RFC3339, scheduledAt)
				if err != nil {
					return fmt.Errorf("invalid --scheduled-at: %w", err)
				}
				req.ScheduledAt = sidemail.NewTime(t)
			}

			for _, path := range attachments {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read attachment: %w", err)
				}
				req.Attachments = append(req.Attachments, sidemail.FileToAttachment(filepath.Base(path), data))
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.SendEmail(cmd.Context(), &req)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ToAddress, "to", "", "recipient address")
	f.StringVar(&req.FromAddress, "from", "", "sender address")
	f.StringVar(&req.FromName, "from-name", "", "sender name")
	f.StringVar(&req.Subject, "subject", "", "subject, required without a template")
	f.StringVar(&req.TemplateName, "template", "", "template name")
	f.StringVar(&req.TemplateID, "template-id", "", "template ID")
	f.StringToStringVar(&props, "prop", nil, "template prop as key=value, repeatable")
	f.StringVar(&req.HTML, "html", "", "HTML body")
	f.StringVar(&req.Text, "text", "", "plain text body")
	f.StringArrayVar(&attachments, "attach", nil, "file to attach, repeatable")
	f.StringVar(&scheduledAt, "scheduled-at", "", "RFC 3339 time to deliver at")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func newEmailSearchCmd(opts *globalOptions) *cobra.Command {
	var (
		query  map[string]string
		limit  int
		cursor string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search sent and scheduled emails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			page, err := client.Email.Search(cmd.Context(), &sidemail.EmailSearchRequest{
				Query:                toProps(query),
				Limit:                limit,
				PaginationCursorNext: cursor,
			})
			if err != nil {
				return err
			}

			if !all {
				return printJSON(cmd.OutOrStdout(), page)
			}

			return page.AutoPaginateEach(cmd.Context(), func(email sidemail.Email) error {
				return printJSON(cmd.OutOrStdout(), email)
			})
		},
	}

	cmd.Flags().StringToStringVar(&query, "query", nil, "filter as field=value, repeatable")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "pagination cursor to continue from")
	cmd.Flags().BoolVar(&all, "all", false, "print every matching email across all pages")

	return cmd
}

func newEmailGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			email, err := client.Email.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), email)
		},
	}
}

func newEmailDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a scheduled email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Email.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
