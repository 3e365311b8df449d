package model

import "time"

type StockUpdate struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Symbol      string    `gorm:"column:symbol" json:"symbol"`
	Price       float64   `gorm:"column:price;type:Float64" json:"price"`
	MentionText string    `gorm:"column:mention_text" json:"mention_text,omitempty"`
	EventTime   time.Time `gorm:"column:event_time;type:DateTime" json:"event_time"`
	InsertedAt  time.Time `gorm:"column:inserted_at;type:DateTime;default:now()" json:"inserted_at"`
}

func (StockUpdate) TableName() string {
	return "stock_update"
}

func (StockUpdate) TableOptions() string {
	return "ENGINE = MergeTree() ORDER BY (event_time, id)"
}
