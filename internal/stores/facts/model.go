package facts

import (
	"time"

	"github.com/ethanbaker/til/pkg/facts"
)

// FactModel represents the database model for the facts table
type FactModel struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`

	Text     string `json:"text" gorm:"column:text;type:text;not null"`
	Source   string `json:"source" gorm:"column:source;not null;size:2048"`
	Category string `json:"category" gorm:"column:category;not null;size:64;index"`

	VotesInteresting int `json:"votesInteresting" gorm:"column:votesInteresting;not null;default:0;index"`
	VotesMindBlowing int `json:"votesMindBlowing" gorm:"column:votesMindBlowing;not null;default:0"`
	VotesFalse       int `json:"votesFalse" gorm:"column:votesFalse;not null;default:0"`

	CreatedIn int `json:"createdIn" gorm:"column:createdIn"`
}

// TableName sets the table name for GORM
func (FactModel) TableName() string {
	return "facts"
}

// toFact converts a database row into the shared fact type
func (m FactModel) toFact() *facts.Fact {
	return &facts.Fact{
		ID:               m.ID,
		Text:             m.Text,
		Source:           m.Source,
		Category:         m.Category,
		VotesInteresting: m.VotesInteresting,
		VotesMindBlowing: m.VotesMindBlowing,
		VotesFalse:       m.VotesFalse,
		CreatedIn:        m.CreatedIn,
	}
}
