package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/backoffice/internal/cli"
	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/tui/viewmodel"
)

func grievancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grievances",
		Short: "List and resolve grievances without the board",
	}
	cmd.AddCommand(grievancesListCmd())
	cmd.AddCommand(grievancesResolveCmd())
	return cmd
}

func grievancesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending grievances, one page at a time",
		Long: `Fetch pending grievances from both sources and print one page.
Customer grievances come first, then guest grievances.

If one source fails the other is still listed and the failure is reported.
The command only fails when neither source could be fetched.`,
		RunE: runGrievancesList,
	}

	cmd.Flags().Int("page", 1, "page to show (1-based)")
	cmd.Flags().Bool("json", false, "print the page as JSON")
	return cmd
}

func runGrievancesList(cmd *cobra.Command, _ []string) error {
	page, _ := cmd.Flags().GetInt("page")
	asJSON, _ := cmd.Flags().GetBool("json")

	client, err := newScheduleClient(appConfig)
	if err != nil {
		return err
	}

	board := grievance.NewBoard(client,
		grievance.WithNotifier(cli.NewNotifier(cmd.ErrOrStderr())),
		grievance.WithFetchRetry(appConfig.Schedule.RetryOptions()),
	)
	if err := board.LoadPending(cmd.Context()); err != nil && board.Len() == 0 {
		return err
	}
	board.SetPage(page - 1)

	if asJSON {
		return writePageJSON(cmd.OutOrStdout(), board.Page())
	}
	return writePageTable(cmd.OutOrStdout(), viewmodel.FromBoard(board))
}

func writePageJSON(w io.Writer, page []model.Grievance) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(page)
}

func writePageTable(w io.Writer, view viewmodel.GrievanceListView) error {
	if view.IsEmpty() {
		_, err := fmt.Fprintln(w, cli.InfoStyle.Render("No pending grievances."))
		return err
	}

	if _, err := fmt.Fprintln(w, cli.FormatTitle("Grievances")); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, 0, len(viewmodel.Columns))
	for _, c := range viewmodel.Columns {
		headers = append(headers, cli.TableHeaderStyle.Render(c))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range view.Rows {
		cells := row.Cells()
		cells[5] = viewmodel.Truncate(cells[5], 40)
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s  %s\n",
		cli.SubtleStyle.Render(view.PageLabel()),
		cli.SubtleStyle.Render(view.Summary()),
	)
	return err
}

func grievancesResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve one grievance",
		Long: `Send a resolution for one grievance to the schedule service. Customer
and guest grievances are numbered separately, so --type is required.

Without --message you are prompted for one; an empty answer is sent as an
empty message unless grievances.require_message is set.`,
		Example: `  backoffice grievances resolve --type customer --id 1 --message "Refund issued"`,
		RunE:    runGrievancesResolve,
	}

	cmd.Flags().String("type", "", "user type: customer or guest")
	cmd.Flags().Int("id", 0, "grievance id")
	cmd.Flags().String("message", "", "resolution message")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func runGrievancesResolve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	typeName, _ := cmd.Flags().GetString("type")
	id, _ := cmd.Flags().GetInt("id")
	message, _ := cmd.Flags().GetString("message")

	userType, err := grievance.ParseUserType(typeName)
	if err != nil {
		return err
	}
	if id <= 0 {
		return common.NewUserError("Grievance id must be positive", common.ErrInvalidConfig)
	}

	if !cmd.Flags().Changed("message") {
		reader := cli.NewNonBlockingReader(cmd.InOrStdin())
		message, err = reader.Prompt(ctx, cmd.ErrOrStderr(), "Resolution message")
		if err != nil {
			return err
		}
	}

	client, err := newScheduleClient(appConfig)
	if err != nil {
		return err
	}

	board := grievance.NewBoard(client,
		grievance.WithNotifier(cli.NewNotifier(cmd.ErrOrStderr())),
		grievance.WithRequireMessage(appConfig.Grievances.RequireMessage),
	)
	return board.Resolve(ctx, model.Ref{UserType: userType, ID: id}, message)
}
