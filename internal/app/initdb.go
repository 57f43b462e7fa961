package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/talkincode/channelhub/internal/domain"
)

// defaultChannels seeds an empty store when system.seed_demo is enabled
var defaultChannels = []domain.Channel{
	{Name: "Google", Number: 40},
	{Name: "Youtube", Number: 25},
	{Name: "Facebook", Number: 15},
	{Name: "Instagram", Number: 12},
	{Name: "Newsletter", Number: 8},
}

// checkChannels initializes demo channels on an empty table
func (a *Application) checkChannels() {
	ctx := context.Background()
	total, err := a.channelRepo.Count(ctx)
	if err != nil {
		zap.L().Error("failed to count channels", zap.Error(err))
		return
	}
	if total > 0 {
		return
	}

	for _, ch := range defaultChannels {
		ch := ch
		if err := a.channelRepo.Create(ctx, &ch); err != nil {
			zap.L().Error("failed to create default channel", zap.String("name", ch.Name), zap.Error(err))
			continue
		}
		zap.L().Info("initialized default channel", zap.String("name", ch.Name), zap.Int64("number", ch.Number))
	}
}
