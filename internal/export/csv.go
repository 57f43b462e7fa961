package export

import (
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"

	"github.com/talkincode/channelhub/internal/domain"
)

type channelRow struct {
	ID        int64  `csv:"id"`
	Name      string `csv:"name"`
	Number    int64  `csv:"number"`
	CreatedAt string `csv:"created_at"`
	UpdatedAt string `csv:"updated_at"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// WriteCSV writes channels with a header line, in the given order
func WriteCSV(w io.Writer, channels []domain.Channel) error {
	rows := make([]*channelRow, 0, len(channels))
	for _, ch := range channels {
		rows = append(rows, &channelRow{
			ID:        ch.ID,
			Name:      ch.Name,
			Number:    ch.Number,
			CreatedAt: formatTime(ch.CreatedAt),
			UpdatedAt: formatTime(ch.UpdatedAt),
		})
	}
	return errors.Wrap(gocsv.Marshal(rows, w), "write channels csv")
}
