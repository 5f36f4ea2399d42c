package main

import (
	"github.com/spf13/cobra"

	"github.com/sidemail/sidemail-go"
)

func newContactsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact"},
		Short:   "Manage contacts",
	}

	cmd.AddCommand(newContactsUpsertCmd(opts))
	cmd.AddCommand(newContactsFindCmd(opts))
	cmd.AddCommand(newContactsListCmd(opts))
	cmd.AddCommand(newContactsDeleteCmd(opts))

	return cmd
}

func newContactsUpsertCmd(opts *globalOptions) *cobra.Command {
	var (
		req        sidemail.ContactRequest
		props      map[string]string
		subscribed bool
	)

	cmd := &cobra.Command{
		Use:   "upsert <email>",
		Short: "Create or update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.EmailAddress = args[0]
			req.CustomProps = toProps(props)
			if cmd.Flags().Changed("subscribed") {
				req.IsSubscribed = &subscribed
			}

			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Contacts.CreateOrUpdate(cmd.Context(), &req)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Identifier, "identifier", "", "ID of the contact in your system")
	f.BoolVar(&subscribed, "subscribed", true, "newsletter subscription, unchanged if not set")
	f.StringVar(&req.Timezone, "timezone", "", "IANA time zone")
	f.StringToStringVar(&props, "prop", nil, "custom prop as key=value, repeatable")
	f.StringSliceVar(&req.Groups, "group", nil, "group ID, repeatable")

	return cmd
}

func newContactsFindCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find <email>",
		Short: "Show a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			contact, err := client.Contacts.Find(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), contact)
		},
	}
}

func newContactsListCmd(opts *globalOptions) *cobra.Command {
	var (
		params sidemail.ListContactsParams
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			if !all {
				page, err := client.Contacts.List(cmd.Context(), &params)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), page)
			}

			for contact, err := range client.Contacts.All(cmd.Context(), &params) {
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), contact); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&params.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&params.PaginationCursorNext, "cursor", "", "pagination cursor to continue from")
	cmd.Flags().BoolVar(&all, "all", false, "print every contact across all pages")

	return cmd
}

func newContactsDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Contacts.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
