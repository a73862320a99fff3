package domain

import "time"

// Article is a published blog post. Articles always belong to the user
// that created them.
type Article struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:150;not null"`
	Category    string    `json:"category" gorm:"size:50;not null"`
	Summary1    string    `json:"summary_1,omitempty" gorm:"type:text"`
	Summary2    string    `json:"summary_2,omitempty" gorm:"type:text"`
	PublishedAt time.Time `json:"publication_date"`
	AuthorID    uint      `json:"author_id" gorm:"index;not null"`
}

func (Article) TableName() string { return "articles" }
