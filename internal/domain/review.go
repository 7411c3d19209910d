package domain

// Review is a product review left by a user. One review per user and model.
type Review struct {
	Model   string `json:"model"`
	User    string `json:"user"`
	Score   int    `json:"score"`
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

var (
	ErrReviewAlreadyExists = &Error{Code: ECONFLICT, Message: "You have already reviewed this product"}
	ErrReviewNotFound      = &Error{Code: ENOTFOUND, Message: "You have not reviewed this product"}
)
