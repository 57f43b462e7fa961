package table

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"unicode/utf16"

	"github.com/pkg/errors"

	"github.com/talkincode/channelhub/internal/client"
	"github.com/talkincode/channelhub/internal/domain"
)

const PageSize = 10

type Column string

const (
	ColumnName   Column = domain.ColumnName
	ColumnNumber Column = domain.ColumnNumber
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ErrNoEdit is returned by SubmitEdit when no record is open
var ErrNoEdit = errors.New("no channel is being edited")

// ErrMalformedResponse is returned when an update answer lacks an id or a name
var ErrMalformedResponse = errors.New("malformed update response")

// API is the part of the channel client the table calls
type API interface {
	UpdateChannel(ctx context.Context, id int64, in client.ChannelInput) (*domain.Channel, error)
	DeleteChannels(ctx context.Context, ids []int64) (*client.BulkDeleteResult, error)
}

// ReloadFunc asks the owner view to fetch the list again
type ReloadFunc func(ctx context.Context) error

// HeaderState is the tri-state of the select-all checkbox
type HeaderState struct {
	Checked       bool
	Indeterminate bool
}

// Table holds sort, page, selection and edit state over the loaded rows.
// It is driven by a single caller.
type Table struct {
	api    API
	reload ReloadFunc

	rows     []domain.Channel
	orderBy  Column
	order    Order
	page     int
	selected []int64

	editing     *domain.Channel
	draftName   string
	draftNumber string
}

func New(api API, reload ReloadFunc) *Table {
	return &Table{
		api:     api,
		reload:  reload,
		orderBy: ColumnName,
		order:   OrderAsc,
	}
}

// SetRows replaces the rows. Selection and page are reset.
func (t *Table) SetRows(rows []domain.Channel) {
	t.rows = append([]domain.Channel(nil), rows...)
	t.selected = nil
	t.page = 0
}

func (t *Table) Rows() []domain.Channel {
	return append([]domain.Channel(nil), t.rows...)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) OrderBy() Column {
	return t.orderBy
}

func (t *Table) Order() Order {
	return t.order
}

// RequestSort flips an ascending active column to descending, anything
// else sorts col ascending.
func (t *Table) RequestSort(col Column) {
	isAsc := t.orderBy == col && t.order == OrderAsc
	if isAsc {
		t.order = OrderDesc
	} else {
		t.order = OrderAsc
	}
	t.orderBy = col
}

func (t *Table) compare(a, b domain.Channel) int {
	var c int
	switch t.orderBy {
	case ColumnNumber:
		c = cmp.Compare(a.Number, b.Number)
	default:
		c = compareUTF16(a.Name, b.Name)
	}
	if t.order == OrderDesc {
		return -c
	}
	return c
}

// compareUTF16 orders strings by UTF-16 code units, the order the web UI
// sorts names in. It differs from byte order only for code points above
// U+FFFF against U+E000..U+FFFF.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// Sorted returns every row in the current order. Equal keys keep load order.
func (t *Table) Sorted() []domain.Channel {
	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		return t.compare(rows[i], rows[j]) < 0
	})
	return rows
}

// VisibleRows is the current page of the sorted rows
func (t *Table) VisibleRows() []domain.Channel {
	rows := t.Sorted()
	start := t.page * PageSize
	if start >= len(rows) {
		return []domain.Channel{}
	}
	end := start + PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// EmptyRows is the number of filler rows that keep a later page full height
func (t *Table) EmptyRows() int {
	if t.page == 0 {
		return 0
	}
	n := (t.page+1)*PageSize - len(t.rows)
	if n < 0 {
		return 0
	}
	return n
}

func (t *Table) Page() int {
	return t.page
}

func (t *Table) PageCount() int {
	return (len(t.rows) + PageSize - 1) / PageSize
}

func (t *Table) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	t.page = page
}

// Toggle adds id to the end of the selection or removes it
func (t *Table) Toggle(id int64) {
	for i, sel := range t.selected {
		if sel == id {
			t.selected = append(t.selected[:i:i], t.selected[i+1:]...)
			return
		}
	}
	t.selected = append(t.selected, id)
}

// SelectAll selects every loaded row, not only the visible page
func (t *Table) SelectAll(checked bool) {
	if !checked {
		t.selected = nil
		return
	}
	t.selected = make([]int64, 0, len(t.rows))
	for _, row := range t.rows {
		t.selected = append(t.selected, row.ID)
	}
}

func (t *Table) IsSelected(id int64) bool {
	for _, sel := range t.selected {
		if sel == id {
			return true
		}
	}
	return false
}

func (t *Table) Selected() []int64 {
	return append([]int64(nil), t.selected...)
}

func (t *Table) HeaderState() HeaderState {
	n := len(t.selected)
	return HeaderState{
		Checked:       len(t.rows) > 0 && n == len(t.rows),
		Indeterminate: n > 0 && n < len(t.rows),
	}
}

// SelectionLabel is the toolbar title, in Polish like the rest of the UI
func (t *Table) SelectionLabel() string {
	n := len(t.selected)
	switch {
	case n == 0:
		return "Kanały"
	case n == 1:
		return fmt.Sprintf("%d zaznaczony", n)
	case n%100 > 1 && n%100 < 5:
		return fmt.Sprintf("%d zaznaczone", n)
	default:
		return fmt.Sprintf("%d zaznaczonych", n)
	}
}

// OpenEdit opens the edit modal with drafts taken from row
func (t *Table) OpenEdit(row domain.Channel) {
	t.editing = &row
	t.draftName = row.Name
	t.draftNumber = strconv.FormatInt(row.Number, 10)
}

func (t *Table) SetDraft(name, number string) {
	t.draftName = name
	t.draftNumber = number
}

func (t *Table) Draft() (name, number string) {
	return t.draftName, t.draftNumber
}

// Editing returns the open record, nil when the modal is closed
func (t *Table) Editing() *domain.Channel {
	return t.editing
}

func (t *Table) CloseEdit() {
	t.editing = nil
}

// SubmitEdit sends the drafts. A well formed answer reloads the list and
// closes the modal. On error the modal stays open with its drafts.
func (t *Table) SubmitEdit(ctx context.Context) error {
	if t.editing == nil {
		return ErrNoEdit
	}
	ch, err := t.api.UpdateChannel(ctx, t.editing.ID, client.ChannelInput{
		Name:   t.draftName,
		Number: t.draftNumber,
	})
	if err != nil {
		return err
	}
	if ch == nil || ch.ID == 0 || ch.Name == "" {
		return ErrMalformedResponse
	}
	if err := t.doReload(ctx); err != nil {
		return err
	}
	t.editing = nil
	return nil
}

// DeleteSelected removes the selected rows on the server and reloads
func (t *Table) DeleteSelected(ctx context.Context) error {
	if len(t.selected) == 0 {
		return nil
	}
	if _, err := t.api.DeleteChannels(ctx, t.Selected()); err != nil {
		return err
	}
	return t.doReload(ctx)
}

func (t *Table) doReload(ctx context.Context) error {
	if t.reload == nil {
		return nil
	}
	return errors.Wrap(t.reload(ctx), "reload channels")
}
