package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/config"
	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/tui/components"
	"github.com/Veraticus/backoffice/internal/tui/themes"
)

func applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Review card-upgrade applications",
	}
	cmd.AddCommand(applicationsShowCmd())
	return cmd
}

func applicationsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a card-upgrade application",
		Long: `Render the detail screen for one card-upgrade application. The
application is read as a JSON customer record from --file or stdin.`,
		Example: `  backoffice applications show --file customer.json
  curl -s $API/customers/123 | backoffice applications show`,
		RunE: runApplicationsShow,
	}

	cmd.Flags().String("file", "", "JSON file holding the customer record")
	cmd.Flags().Int("width", 100, "render width")
	return cmd
}

func runApplicationsShow(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	width, _ := cmd.Flags().GetInt("width")

	var in io.Reader
	switch {
	case path != "":
		f, err := os.Open(config.ExpandPath(path))
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	case stdinIsFile():
		in = cmd.InOrStdin()
	default:
		return common.NewUserError("Provide --file or pipe a customer record on stdin", common.ErrMissingConfig)
	}

	customer, err := readCustomer(in)
	if err != nil {
		return err
	}

	out := renderApplication(customer, appConfig.DateFormatter(), themes.GetTheme(appConfig.Display.Theme), width)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// readCustomer decodes one customer record. JSON null or empty input yields
// nil, which still renders every row blank.
func readCustomer(r io.Reader) (*model.Customer, error) {
	var c *model.Customer
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode customer: %w", err)
	}
	return c, nil
}

func renderApplication(c *model.Customer, dates detail.DateFormatter, theme themes.Theme, width int) string {
	return components.RenderDetailView(detail.CardUpgradeApplicationView(c, dates), theme, width)
}

// stdinIsFile reports whether stdin is redirected from a file or pipe.
func stdinIsFile() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
