package model

type ChatCommand struct {
	ChatID int64
	Text   string
}
