package request

// RegisterUser is the body of POST /users
type RegisterUser struct {
	Username    string `json:"username" binding:"required,max=32"`
	DisplayName string `json:"display_name" binding:"omitempty,max=64"`
}

// Post is the body for creating a post or a reply
type Post struct {
	Text     string `json:"text" binding:"required,max=280"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=512"`
}
