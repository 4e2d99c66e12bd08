package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/domain/partner"
	"github.com/gravadigital/partnerships-api/internal/services"
)

var errNotConfirmed = errors.New("refusing to empty the recycle bin without --yes")

// NewBinCommand creates the recycle bin command group.
func NewBinCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bin",
		Short: "Inspect or empty the recycle bin",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List soft-deleted partners, items and global events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.session(func(svc *services.Services) error {
				bin, err := svc.RecycleBin.List(cmd.Context())
				if err != nil {
					return err
				}
				return printBin(newPrinter(rootOpts, cmd.OutOrStdout()), bin)
			})
		},
	})

	var yes bool
	empty := &cobra.Command{
		Use:   "empty",
		Short: "Permanently remove everything in the recycle bin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errNotConfirmed
			}
			return rootOpts.session(func(svc *services.Services) error {
				res, err := svc.RecycleBin.Empty(cmd.Context())
				if err != nil {
					return err
				}
				p := newPrinter(rootOpts, cmd.OutOrStdout())
				if p.structured() {
					return p.encode(res)
				}
				_, err = fmt.Fprintf(p.w, "removed %d partners, %d items, %d global events\n",
					res.Partners, res.Items, res.GlobalEvents)
				return err
			})
		},
	}
	empty.Flags().BoolVarP(&yes, "yes", "y", false, "confirm permanent deletion")
	cmd.AddCommand(empty)

	return cmd
}

func printBin(p *printer, bin *services.Bin) error {
	if p.structured() {
		return p.encode(bin)
	}

	var rows [][]string
	for _, d := range bin.Partners {
		rows = append(rows, []string{"partner", d.Partner.ID, d.Partner.Name, deletedAt(d.Partner.DeletedAt)})
	}
	for _, c := range partner.Collections() {
		for _, it := range bin.Items[c] {
			rows = append(rows, []string{string(c), it.ItemID, it.PartnerName + ": " + it.Label, common.FormatDate(it.DeletedAt)})
		}
	}
	for _, e := range bin.GlobalEvents {
		rows = append(rows, []string{"global_event", e.ID, e.EventName, deletedAt(e.DeletedAt)})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.w, "recycle bin is empty")
		return err
	}
	return p.table([]string{"KIND", "ID", "LABEL", "DELETED"}, rows)
}
