package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movie is a catalog entry. Money columns are exact decimals.
type Movie struct {
	MovieID     uint            `json:"movie_id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"size:255;not null;index"`
	Runtime     int             `json:"runtime"`
	About       string          `json:"about" gorm:"type:text"`
	Plot        string          `json:"plot" gorm:"type:text"`
	MPAARating  string          `json:"mpaa_rating" gorm:"column:mpaa_rating;size:10"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:decimal(15,2);not null;default:0"`
	BoxOffice   decimal.Decimal `json:"box_office" gorm:"type:decimal(15,2);not null;default:0"`
	PosterURL   string          `json:"poster_url" gorm:"size:500"`
	TrailerURL  string          `json:"trailer_url" gorm:"size:500"`
	ReleaseDate *time.Time      `json:"release_date"`
}

func (Movie) TableName() string { return "movies" }
