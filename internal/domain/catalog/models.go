package catalog

import "time"

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:256;not null"`
	Slug      string `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time
}

type Genre struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:256;not null"`
	Slug      string `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time
}

type Title struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:256;not null"`
	Year        int     `gorm:"not null;index"`
	Description *string `gorm:"type:text"`

	CategoryID *uint     `gorm:"index"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`

	Genres []Genre `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TitleGenre is the explicit join row between a title and one of its genres.
type TitleGenre struct {
	TitleID uint   `gorm:"primaryKey"`
	Title   *Title `gorm:"constraint:OnDelete:CASCADE;"`
	GenreID uint   `gorm:"primaryKey;index"`
	Genre   *Genre `gorm:"constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
}
