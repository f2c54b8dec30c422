package models

import "time"

// Article ist ein generierter Blog-Artikel. Artikel werden nach dem Anlegen nicht mehr verändert.
type Article struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:500;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Author    string    `json:"author" gorm:"size:255;not null"`
	Excerpt   string    `json:"excerpt" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_articles_created_at,sort:desc"`
	// UpdatedAt ist für eine spätere Bearbeitungsfunktion reserviert und entspricht derzeit CreatedAt.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName gibt explizit den Tabellennamen an.
func (Article) TableName() string {
	return "articles"
}
