package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/talkincode/channelhub/internal/domain"
	"github.com/talkincode/channelhub/internal/export"
	"github.com/talkincode/channelhub/internal/table"
)

var (
	listSort  string
	listOrder string
	listPage  int
	listAll   bool

	addName   string
	addNumber string

	editName   string
	editNumber string

	exportOut string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List channels, sorted and paginated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		col := table.Column(listSort)
		if col != table.ColumnName && col != table.ColumnNumber {
			return errors.Errorf("unknown sort column %q", listSort)
		}
		order := table.Order(listOrder)
		if order != table.OrderAsc && order != table.OrderDesc {
			return errors.Errorf("unknown order %q", listOrder)
		}

		view := newView()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}
		tb := view.Table()
		sortBy(tb, col, order)

		out := cmd.OutOrStdout()
		if listAll {
			return printChannels(out, tb.Sorted())
		}
		tb.SetPage(listPage - 1)
		if err := printChannels(out, tb.VisibleRows()); err != nil {
			return err
		}
		pages := tb.PageCount()
		if pages == 0 {
			pages = 1
		}
		fmt.Fprintf(out, "page %d/%d, %d channels\n", tb.Page()+1, pages, tb.Len())
		return nil
	},
}

// sortBy drives RequestSort until the table is ordered by col in order
func sortBy(tb *table.Table, col table.Column, order table.Order) {
	for i := 0; i < 2 && (tb.OrderBy() != col || tb.Order() != order); i++ {
		tb.RequestSort(col)
	}
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		ch, err := newClient().GetChannel(cmd.Context(), ids[0])
		if err != nil {
			return err
		}
		return printChannels(cmd.OutOrStdout(), []domain.Channel{*ch})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a channel",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := newView()
		view.OpenAdd()
		view.SetAddDraft(addName, addNumber)
		ch, err := view.SubmitAdd(cmd.Context())
		if err != nil {
			return err
		}
		return printChannels(cmd.OutOrStdout(), []domain.Channel{*ch})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the name or number of a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("number") {
			return errors.New("nothing to change, use --name or --number")
		}

		ctx := cmd.Context()
		view := newView()
		ch, err := newClient().GetChannel(ctx, ids[0])
		if err != nil {
			return err
		}

		tb := view.Table()
		tb.OpenEdit(*ch)
		name, number := tb.Draft()
		if cmd.Flags().Changed("name") {
			name = editName
		}
		if cmd.Flags().Changed("number") {
			number = editNumber
		}
		tb.SetDraft(name, number)
		if err := tb.SubmitEdit(ctx); err != nil {
			return err
		}

		for _, row := range view.Channels() {
			if row.ID == ch.ID {
				return printChannels(cmd.OutOrStdout(), []domain.Channel{row})
			}
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more channels",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		view := newView()
		if err := view.Load(ctx); err != nil {
			return err
		}
		before := len(view.Channels())

		tb := view.Table()
		for _, id := range ids {
			if !tb.IsSelected(id) {
				tb.Toggle(id)
			}
		}
		if err := tb.DeleteSelected(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d channel(s)\n", before-len(view.Channels()))
		return nil
	},
}

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show each channel's share of the total number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := newView()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSHARE")
		for _, s := range view.Chart() {
			fmt.Fprintf(w, "%s\t%.1f%%\n", s.Label, s.Value)
		}
		return w.Flush()
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all channels as CSV",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := newView()
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			defer f.Close()
			out = f
		}
		return export.WriteCSV(out, view.Channels())
	},
}

func printChannels(out io.Writer, channels []domain.Channel) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tNUMBER")
	for _, ch := range channels {
		fmt.Fprintf(w, "%d\t%s\t%d\n", ch.ID, ch.Name, ch.Number)
	}
	return w.Flush()
}

func init() {
	listCmd.Flags().StringVar(&listSort, "sort", string(table.ColumnName), "sort column: name or number")
	listCmd.Flags().StringVar(&listOrder, "order", string(table.OrderAsc), "sort order: asc or desc")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page to show, 10 rows per page")
	listCmd.Flags().BoolVar(&listAll, "all", false, "print every row instead of one page")

	addCmd.Flags().StringVar(&addName, "name", "", "channel name")
	addCmd.Flags().StringVar(&addNumber, "number", "", "channel number")

	editCmd.Flags().StringVar(&editName, "name", "", "new channel name")
	editCmd.Flags().StringVar(&editNumber, "number", "", "new channel number")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file, - for stdout")
}
