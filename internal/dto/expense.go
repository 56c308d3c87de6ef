package dto

type ExpenseResponse struct {
	ID          string  `json:"id"`
	Amount      string  `json:"amount"`
	Currency    string  `json:"currency"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	Place       *string `json:"place"`
	Date        string  `json:"date"`
	Source      string  `json:"source"`
	CreatedAt   string  `json:"created_at"`
}
