package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/export"
	"github.com/gravadigital/partnerships-api/internal/logger"
	"github.com/gravadigital/partnerships-api/internal/services"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export <xlsx|csv>",
		Short:     "Export active partnerships to a workbook or CSV file",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"xlsx", "csv"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.session(func(svc *services.Services) error {
				data, err := render(cmd, svc, args[0])
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				logger.CLI().Info("Export written", "path", output, "bytes", len(data))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout when empty)")

	return cmd
}

func render(cmd *cobra.Command, svc *services.Services, format string) ([]byte, error) {
	ctx := cmd.Context()
	list, err := svc.Partnerships.ListPartnerships(ctx, common.ViewActive)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch format {
	case "csv":
		err = export.WriteCSV(&buf, export.PartnersSheet(list))
	default:
		events, lerr := svc.GlobalEvents.List(ctx, common.ViewActive)
		if lerr != nil {
			return nil, lerr
		}
		err = export.WriteXLSX(&buf, append(export.Workbook(list), export.GlobalEventsSheet(events)))
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
