package service

import (
	"stockpulse/feed/server/internal/model"
	"stockpulse/feed/server/internal/repository"
)

type UpdatesService struct {
	repo    repository.UpdateRepository
	symbols []string
}

func NewUpdatesService(repo repository.UpdateRepository, symbols []string) *UpdatesService {
	return &UpdatesService{
		repo:    repo,
		symbols: symbols,
	}
}

func (us *UpdatesService) GetLastTenUpdates() []model.StockUpdate {
	updates := us.repo.GetLatestUpdates(10)
	return updates
}

func (us *UpdatesService) GetCountUpdates(symbol string) int64 {
	return us.repo.GetUpdatesCount(symbol)
}

func (us *UpdatesService) GetCountUpdatesPerSymbol() map[string]int {
	return us.repo.GetUpdateCountGroupBySymbol()
}

func (us *UpdatesService) GetLastUpdatesPerSymbol() map[string][]model.StockUpdate {
	return us.repo.GetLatestUpdatesGroupBySymbol(us.symbols, 10)
}
