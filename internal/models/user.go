package models

// User 用户资料
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Number  string `json:"number"`
	Address string `json:"address"`
}
