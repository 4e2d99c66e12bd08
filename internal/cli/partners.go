package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravadigital/partnerships-api/internal/domain/common"
	"github.com/gravadigital/partnerships-api/internal/services"
)

func viewFlag(cmd *cobra.Command, view *string) {
	cmd.Flags().StringVar(view, "view", string(common.ViewActive), "rows to include (active|deleted|all)")
}

func parseView(s string) (common.View, error) {
	v, ok := common.ViewFromString(s)
	if !ok {
		return "", fmt.Errorf("invalid view %q", s)
	}
	return v, nil
}

func deletedAt(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return common.FormatDate(*t)
}

// NewPartnersCommand creates the partners command group.
func NewPartnersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Inspect tracked partners",
	}

	var view string
	list := &cobra.Command{
		Use:   "list",
		Short: "List partners with their collection sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseView(view)
			if err != nil {
				return err
			}
			return rootOpts.session(func(svc *services.Services) error {
				list, err := svc.Partnerships.ListPartnerships(cmd.Context(), v)
				if err != nil {
					return err
				}
				p := newPrinter(rootOpts, cmd.OutOrStdout())
				if p.structured() {
					return p.encode(list)
				}
				rows := make([][]string, 0, len(list))
				for _, d := range list {
					rows = append(rows, []string{
						d.Partner.ID,
						d.Partner.Name,
						d.Partner.Slug,
						string(d.Partner.Type),
						strconv.FormatBool(d.Partner.IsActive),
						strconv.Itoa(len(d.Events)),
						deletedAt(d.Partner.DeletedAt),
					})
				}
				return p.table([]string{"ID", "NAME", "SLUG", "TYPE", "ACTIVE", "EVENTS", "DELETED"}, rows)
			})
		},
	}
	viewFlag(list, &view)
	cmd.AddCommand(list)

	return cmd
}

// NewEventsCommand creates the global events command group.
func NewEventsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect global events",
	}

	var view string
	list := &cobra.Command{
		Use:   "list",
		Short: "List global events with their invitation counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseView(view)
			if err != nil {
				return err
			}
			return rootOpts.session(func(svc *services.Services) error {
				events, err := svc.GlobalEvents.List(cmd.Context(), v)
				if err != nil {
					return err
				}
				p := newPrinter(rootOpts, cmd.OutOrStdout())
				if p.structured() {
					return p.encode(events)
				}
				rows := make([][]string, 0, len(events))
				for _, e := range events {
					rows = append(rows, []string{
						e.ID,
						e.EventName,
						e.EventDate,
						strconv.Itoa(len(e.Invitations)),
						deletedAt(e.DeletedAt),
					})
				}
				return p.table([]string{"ID", "NAME", "DATE", "INVITATIONS", "DELETED"}, rows)
			})
		},
	}
	viewFlag(list, &view)
	cmd.AddCommand(list)

	return cmd
}
