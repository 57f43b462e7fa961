package table

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/channelhub/internal/client"
	"github.com/talkincode/channelhub/internal/domain"
)

type fakeAPI struct {
	updated   []client.ChannelInput
	updateRes *domain.Channel
	updateErr error
	deleted   [][]int64
	deleteErr error
}

func (f *fakeAPI) UpdateChannel(_ context.Context, id int64, in client.ChannelInput) (*domain.Channel, error) {
	f.updated = append(f.updated, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.updateRes != nil {
		return f.updateRes, nil
	}
	return &domain.Channel{ID: id, Name: in.Name}, nil
}

func (f *fakeAPI) DeleteChannels(_ context.Context, ids []int64) (*client.BulkDeleteResult, error) {
	f.deleted = append(f.deleted, ids)
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &client.BulkDeleteResult{DeletedCount: int64(len(ids))}, nil
}

func names(rows []domain.Channel) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func fixture() []domain.Channel {
	return []domain.Channel{
		{ID: 1, Name: "Youtube", Number: 25},
		{ID: 2, Name: "Google", Number: 40},
		{ID: 3, Name: "Facebook", Number: 25},
	}
}

func TestDefaultSortByNameAsc(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(fixture())
	assert.Equal(t, ColumnName, tb.OrderBy())
	assert.Equal(t, OrderAsc, tb.Order())
	assert.Equal(t, []string{"Facebook", "Google", "Youtube"}, names(tb.VisibleRows()))
}

func TestRequestSortToggles(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows([]domain.Channel{{ID: 1, Name: "Google"}, {ID: 2, Name: "Youtube"}})

	assert.Equal(t, []string{"Google", "Youtube"}, names(tb.VisibleRows()))

	tb.RequestSort(ColumnName)
	assert.Equal(t, OrderDesc, tb.Order())
	assert.Equal(t, []string{"Youtube", "Google"}, names(tb.VisibleRows()))

	tb.RequestSort(ColumnName)
	assert.Equal(t, OrderAsc, tb.Order())
	assert.Equal(t, []string{"Google", "Youtube"}, names(tb.VisibleRows()))
}

func TestRequestSortOtherColumnStartsAscending(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(fixture())
	tb.RequestSort(ColumnName)
	require.Equal(t, OrderDesc, tb.Order())

	tb.RequestSort(ColumnNumber)
	assert.Equal(t, ColumnNumber, tb.OrderBy())
	assert.Equal(t, OrderAsc, tb.Order())
	// equal numbers keep load order
	assert.Equal(t, []string{"Youtube", "Facebook", "Google"}, names(tb.VisibleRows()))

	tb.RequestSort(ColumnNumber)
	assert.Equal(t, []string{"Google", "Youtube", "Facebook"}, names(tb.VisibleRows()))
}

func manyRows(n int) []domain.Channel {
	rows := make([]domain.Channel, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, domain.Channel{ID: int64(i), Name: fmt.Sprintf("ch%02d", i), Number: int64(i)})
	}
	return rows
}

func TestPagination(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(manyRows(23))

	assert.Equal(t, 3, tb.PageCount())
	assert.Len(t, tb.VisibleRows(), 10)
	assert.Zero(t, tb.EmptyRows())

	tb.SetPage(2)
	rows := tb.VisibleRows()
	require.Len(t, rows, 3)
	assert.Equal(t, "ch21", rows[0].Name)
	assert.Equal(t, 7, tb.EmptyRows())

	tb.SetPage(5)
	assert.Empty(t, tb.VisibleRows())

	tb.SetPage(-1)
	assert.Equal(t, 0, tb.Page())
}

func TestEmptyRowsFullPage(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(manyRows(20))
	tb.SetPage(1)
	assert.Zero(t, tb.EmptyRows())
}

func TestSelection(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(fixture())

	assert.Equal(t, "Kanały", tb.SelectionLabel())
	assert.Equal(t, HeaderState{}, tb.HeaderState())

	tb.Toggle(3)
	tb.Toggle(1)
	assert.Equal(t, []int64{3, 1}, tb.Selected())
	assert.True(t, tb.IsSelected(3))
	assert.False(t, tb.IsSelected(2))
	assert.Equal(t, HeaderState{Indeterminate: true}, tb.HeaderState())
	assert.Equal(t, "2 zaznaczone", tb.SelectionLabel())

	tb.Toggle(3)
	assert.Equal(t, []int64{1}, tb.Selected())
	assert.Equal(t, "1 zaznaczony", tb.SelectionLabel())

	tb.SelectAll(true)
	assert.Equal(t, []int64{1, 2, 3}, tb.Selected())
	assert.Equal(t, HeaderState{Checked: true}, tb.HeaderState())

	tb.SelectAll(false)
	assert.Empty(t, tb.Selected())
}

func TestSelectAllCoversEveryPage(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(manyRows(15))
	tb.SelectAll(true)
	assert.Len(t, tb.Selected(), 15)
	assert.Equal(t, "15 zaznaczonych", tb.SelectionLabel())
}

func TestSetRowsResetsState(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows(manyRows(15))
	tb.SetPage(1)
	tb.Toggle(2)

	tb.SetRows(manyRows(3))
	assert.Zero(t, tb.Page())
	assert.Empty(t, tb.Selected())
}

func TestSubmitEdit(t *testing.T) {
	api := &fakeAPI{}
	reloads := 0
	tb := New(api, func(context.Context) error { reloads++; return nil })
	tb.SetRows(fixture())

	tb.OpenEdit(fixture()[1])
	name, number := tb.Draft()
	assert.Equal(t, "Google", name)
	assert.Equal(t, "40", number)

	tb.SetDraft("Bing", "41")
	require.NoError(t, tb.SubmitEdit(context.Background()))
	assert.Equal(t, []client.ChannelInput{{Name: "Bing", Number: "41"}}, api.updated)
	assert.Equal(t, 1, reloads)
	assert.Nil(t, tb.Editing())
}

func TestSubmitEditErrorKeepsModal(t *testing.T) {
	api := &fakeAPI{updateErr: &client.APIError{Status: 422, Message: "The name field is required."}}
	reloads := 0
	tb := New(api, func(context.Context) error { reloads++; return nil })
	tb.SetRows(fixture())
	tb.OpenEdit(fixture()[0])
	tb.SetDraft("", "1")

	err := tb.SubmitEdit(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Zero(t, reloads)
	require.NotNil(t, tb.Editing())
	name, _ := tb.Draft()
	assert.Equal(t, "", name)
}

func TestSubmitEditMalformedResponse(t *testing.T) {
	api := &fakeAPI{updateRes: &domain.Channel{}}
	reloads := 0
	tb := New(api, func(context.Context) error { reloads++; return nil })
	tb.OpenEdit(fixture()[0])

	assert.Equal(t, ErrMalformedResponse, tb.SubmitEdit(context.Background()))
	assert.Zero(t, reloads)
	assert.NotNil(t, tb.Editing())
}

func TestSubmitEditWithoutModal(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	assert.Equal(t, ErrNoEdit, tb.SubmitEdit(context.Background()))
}

func TestDeleteSelected(t *testing.T) {
	api := &fakeAPI{}
	reloads := 0
	tb := New(api, func(context.Context) error { reloads++; return nil })
	tb.SetRows(fixture())

	require.NoError(t, tb.DeleteSelected(context.Background()))
	assert.Empty(t, api.deleted)
	assert.Zero(t, reloads)

	tb.Toggle(2)
	tb.Toggle(3)
	require.NoError(t, tb.DeleteSelected(context.Background()))
	assert.Equal(t, [][]int64{{2, 3}}, api.deleted)
	assert.Equal(t, 1, reloads)
}

func TestDeleteSelectedError(t *testing.T) {
	api := &fakeAPI{deleteErr: errors.New("boom")}
	reloads := 0
	tb := New(api, func(context.Context) error { reloads++; return nil })
	tb.SetRows(fixture())
	tb.Toggle(1)

	assert.Error(t, tb.DeleteSelected(context.Background()))
	assert.Zero(t, reloads)
	assert.Equal(t, []int64{1}, tb.Selected())
}

func TestNameOrderFollowsUTF16(t *testing.T) {
	tb := New(&fakeAPI{}, nil)
	tb.SetRows([]domain.Channel{
		{ID: 1, Name: "！wide"},
		{ID: 2, Name: "\U0001F600smile"},
		{ID: 3, Name: "abc"},
	})
	assert.Equal(t, []string{"abc", "\U0001F600smile", "！wide"}, names(tb.VisibleRows()))

	assert.Equal(t, 0, compareUTF16("Google", "Google"))
	assert.Negative(t, compareUTF16("Facebook", "Google"))
	assert.Positive(t, compareUTF16("\uE000", "\U00010000"))
}
