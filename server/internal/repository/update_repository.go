package repository

import (
	"log"

	"gorm.io/gorm"

	"stockpulse/feed/server/internal/model"
)

type UpdateRepository interface {
	GetLatestUpdates(limit int) []model.StockUpdate
	GetUpdatesCount(symbol string) int64
	GetLatestUpdatesGroupBySymbol(symbols []string, limit int) map[string][]model.StockUpdate
	GetUpdateCountGroupBySymbol() map[string]int
}

type gormUpdateRepository struct {
	db *gorm.DB
}

func NewGormUpdateRepository(db *gorm.DB) UpdateRepository {
	return &gormUpdateRepository{db: db}
}

func (gur *gormUpdateRepository) GetLatestUpdates(limit int) []model.StockUpdate {
	var updates []model.StockUpdate
	err := gur.db.Order("event_time desc").Limit(limit).Find(&updates).Error
	if err != nil {
		log.Printf("Error for query: %v", err)
		return []model.StockUpdate{}
	}
	return updates
}

func (gur *gormUpdateRepository) GetUpdatesCount(symbol string) int64 {
	var count int64
	query := gur.db.Model(&model.StockUpdate{})
	if symbol != "" {
		query.Where("symbol = ?", symbol)
	}
	if err := query.Count(&count).Error; err != nil {
		log.Printf("Error for query: %v", err)
		return 0
	}
	return count
}

func (gur *gormUpdateRepository) GetLatestUpdatesGroupBySymbol(symbols []string, limit int) map[string][]model.StockUpdate {
	subQuery := gur.db.Model(&model.StockUpdate{}).
		Select("*, ROW_NUMBER() OVER (PARTITION BY symbol ORDER BY event_time DESC) as rn").
		Where("symbol IN (?)", symbols)

	var flatUpdates []model.StockUpdate
	err := gur.db.Table("(?) as ranked_updates", subQuery).
		Where("rn <= ?", limit).
		Order("symbol, event_time DESC").
		Find(&flatUpdates).Error

	if err != nil {
		return make(map[string][]model.StockUpdate)
	}

	results := make(map[string][]model.StockUpdate)
	for _, u := range flatUpdates {
		results[u.Symbol] = append(results[u.Symbol], u)
	}

	return results
}

func (gur *gormUpdateRepository) GetUpdateCountGroupBySymbol() map[string]int {
	type SymbolCount struct {
		Symbol string
		Count  int
	}
	var symbolCountResult []SymbolCount
	err := gur.db.Model(&model.StockUpdate{}).Select("symbol, count(*) as count").Group("symbol").Scan(&symbolCountResult).Error
	if err != nil {
		log.Printf("Error for query: %v", err)
		return make(map[string]int)
	}
	result := make(map[string]int, len(symbolCountResult))
	for _, r := range symbolCountResult {
		result[r.Symbol] = r.Count
	}
	return result
}
