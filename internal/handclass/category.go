package handclass

import "github.com/lox/pokertexter/poker"

// Category is a coarse strength bucket for a starting hand.
type Category string

const (
	CategoryPremium Category = "Premium"
	CategoryStrong  Category = "Strong"
	CategoryMedium  Category = "Medium"
	CategoryWeak    Category = "Weak"
	CategoryTrash   Category = "Trash"
)

// Category buckets the class: Premium (JJ+, AK), Strong (TT, AQ, AJ), Medium
// (77-99, suited broadway), Weak (22-66, suited connectors and one-gappers),
// Trash (everything else).
func (c Class) Category() Category {
	switch {
	case c.IsPair() && c.Low >= poker.Jack,
		c.High == poker.Ace && c.Low == poker.King:
		return CategoryPremium
	case c.IsPair() && c.Low == poker.Ten,
		c.High == poker.Ace && (c.Low == poker.Queen || c.Low == poker.Jack):
		return CategoryStrong
	case c.IsPair() && c.Low >= poker.Seven,
		c.Suited && c.Low >= poker.Ten:
		return CategoryMedium
	case c.IsPair(),
		c.Suited && c.High-c.Low <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}
