package models

// ChatUser is a Telegram user who started the bot.
type ChatUser struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
