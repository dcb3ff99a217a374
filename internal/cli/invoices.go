package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"invoice-bookkeeping-backend/internal/app"
	"invoice-bookkeeping-backend/internal/models"
	"invoice-bookkeeping-backend/internal/services/invoicing"
	"invoice-bookkeeping-backend/internal/services/search"

	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		query      string
		status     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices, optionally filtered by text and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := search.ParseStatus(status)
			if err != nil {
				return err
			}
			return opts.withApp(cmd, func(a *app.App) error {
				items, err := a.Service.List(cmd.Context(), search.Criteria{Query: query, Status: st})
				if err != nil {
					return report(cmd, err, invoicing.NotifyLoadFailed)
				}
				if jsonOutput {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(items)
				}
				fmt.Fprint(cmd.OutOrStdout(), RenderInvoices(items))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "match against name or number (case-insensitive)")
	cmd.Flags().StringVarP(&status, "status", "s", search.StatusAll, "all, paid, unpaid or pending")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an invoice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := flags.form()
			if err != nil {
				return report(cmd, err, invoicing.NotifyCreateFailed)
			}
			return opts.withApp(cmd, func(a *app.App) error {
				inv, err := a.Service.Create(cmd.Context(), form)
				if err != nil {
					return report(cmd, err, invoicing.NotifyCreateFailed)
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, RenderNotification(invoicing.NotifyCreated))
				fmt.Fprint(out, RenderInvoices([]models.Invoice{*inv}))
				return nil
			})
		},
	}

	flags.register(cmd, string(models.StatusPending))
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var flags formFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the name, due date, amount or status of an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return opts.withApp(cmd, func(a *app.App) error {
				current, err := a.Service.Get(cmd.Context(), id)
				if errors.Is(err, invoicing.ErrInvoiceNotFound) {
					fmt.Fprint(cmd.OutOrStdout(), RenderNotification(invoicing.NotifyNothingToDo))
					return nil
				}
				if err != nil {
					return report(cmd, err, invoicing.NotifyLoadFailed)
				}

				form, err := flags.overlay(cmd, *current)
				if err != nil {
					return report(cmd, err, invoicing.NotifyUpdateFailed)
				}
				inv, applied, err := a.Service.Update(cmd.Context(), id, form)
				if err != nil {
					return report(cmd, err, invoicing.NotifyUpdateFailed)
				}

				out := cmd.OutOrStdout()
				if !applied {
					fmt.Fprint(out, RenderNotification(invoicing.NotifyNothingToDo))
					return nil
				}
				fmt.Fprint(out, RenderNotification(invoicing.NotifyUpdated))
				fmt.Fprint(out, RenderInvoices([]models.Invoice{*inv}))
				return nil
			})
		},
	}

	flags.register(cmd, "")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				removed, err := a.Service.Delete(cmd.Context(), args[0])
				if err != nil {
					return report(cmd, err, invoicing.NotifyDeleteFailed)
				}
				if !removed {
					fmt.Fprint(cmd.OutOrStdout(), RenderNotification(invoicing.NotifyNothingToDo))
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), RenderNotification(invoicing.NotifyDeleted))
				return nil
			})
		},
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import invoices from a CSV file",
		Long:  "Import invoices from a CSV file with the columns name, due_date, amount and status. Invalid rows are skipped and reported.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			return opts.withApp(cmd, func(a *app.App) error {
				res, err := a.Service.ImportCSV(cmd.Context(), f)
				if err != nil {
					return report(cmd, err, invoicing.NotifyCreateFailed)
				}
				fmt.Fprint(cmd.OutOrStdout(), RenderImport(res))
				return nil
			})
		},
	}
}

func newNextNumberCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Print an unused invoice number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(a *app.App) error {
				n, err := a.Service.NextNumber(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}
