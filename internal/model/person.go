package model

import "time"

// Person is a cast or crew member.
type Person struct {
	PersonID  uint       `json:"person_id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"size:255;not null;index"`
	BirthDate *time.Time `json:"birth_date"`
	Biography string     `json:"biography" gorm:"type:text"`
}

func (Person) TableName() string { return "people" }

// Award is granted to a movie, a person, or both.
type Award struct {
	AwardID  uint   `json:"award_id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:255;not null"`
	Category string `json:"category" gorm:"size:255"`
	Year     int    `json:"year"`
	MovieID  *uint  `json:"movie_id" gorm:"index"`
	PersonID *uint  `json:"person_id" gorm:"index"`
}

func (Award) TableName() string { return "awards" }
