package dashboard

import (
	"context"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/channelhub/internal/client"
	"github.com/talkincode/channelhub/internal/domain"
	"github.com/talkincode/channelhub/internal/table"
)

// LoadingText is shown until the first list arrives
const LoadingText = "Wczytywanie danych..."

// ErrMissingField is returned by SubmitAdd when name or number is blank
var ErrMissingField = errors.New("name and number are required")

type API interface {
	table.API
	ListChannels(ctx context.Context) ([]domain.Channel, error)
	CreateChannel(ctx context.Context, in client.ChannelInput) (*domain.Channel, error)
}

// Slice is one share of the channel chart, Value is a percentage
type Slice struct {
	ID    int64   `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// View is the root screen: the channel list, its chart and the add modal
type View struct {
	api      API
	table    *table.Table
	channels []domain.Channel
	loaded   bool

	addOpen   bool
	addName   string
	addNumber string
}

func New(api API) *View {
	v := &View{api: api}
	v.table = table.New(api, v.Reload)
	return v
}

func (v *View) Table() *table.Table {
	return v.table
}

// Loaded is false until the first successful Load
func (v *View) Loaded() bool {
	return v.loaded
}

func (v *View) Channels() []domain.Channel {
	return append([]domain.Channel(nil), v.channels...)
}

func (v *View) Load(ctx context.Context) error {
	channels, err := v.api.ListChannels(ctx)
	if err != nil {
		return errors.Wrap(err, "list channels")
	}
	v.setChannels(channels)
	v.loaded = true
	return nil
}

func (v *View) Reload(ctx context.Context) error {
	return v.Load(ctx)
}

func (v *View) setChannels(channels []domain.Channel) {
	v.channels = channels
	v.table.SetRows(channels)
}

// Chart gives every channel its share of the number total. All shares
// are 0 when the total is 0.
func (v *View) Chart() []Slice {
	slices := make([]Slice, 0, len(v.channels))
	if len(v.channels) == 0 {
		return slices
	}

	data := make(stats.Float64Data, 0, len(v.channels))
	for _, ch := range v.channels {
		data = append(data, float64(ch.Number))
	}
	sum, err := stats.Sum(data)
	if err != nil {
		zap.L().Debug("chart sum failed", zap.Error(err))
		sum = 0
	}

	for _, ch := range v.channels {
		var value float64
		if sum != 0 {
			value = float64(ch.Number) / sum * 100
		}
		slices = append(slices, Slice{ID: ch.ID, Label: ch.Name, Value: value})
	}
	return slices
}

func (v *View) OpenAdd() {
	v.addOpen = true
}

// CloseAdd hides the modal and keeps what was typed
func (v *View) CloseAdd() {
	v.addOpen = false
}

func (v *View) AddOpen() bool {
	return v.addOpen
}

func (v *View) SetAddDraft(name, number string) {
	v.addName = name
	v.addNumber = number
}

func (v *View) AddDraft() (name, number string) {
	return v.addName, v.addNumber
}

// SubmitAdd creates a channel from the add draft. The new record is
// appended locally, then the draft is cleared and the modal closed. On
// failure the draft stays and the error is returned.
func (v *View) SubmitAdd(ctx context.Context) (*domain.Channel, error) {
	if strings.TrimSpace(v.addName) == "" || strings.TrimSpace(v.addNumber) == "" {
		return nil, ErrMissingField
	}

	ch, err := v.api.CreateChannel(ctx, client.ChannelInput{Name: v.addName, Number: v.addNumber})
	if err != nil {
		zap.L().Debug("add channel failed", zap.String("name", v.addName), zap.Error(err))
		return nil, err
	}

	v.setChannels(append(v.Channels(), *ch))
	v.addName = ""
	v.addNumber = ""
	v.addOpen = false
	return ch, nil
}
