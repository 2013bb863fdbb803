package requests

// CreateConversationRequest starts a new conversation. Title is optional.
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// RenameConversationRequest updates the conversation title.
type RenameConversationRequest struct {
	Title string `json:"title" binding:"required"`
}

// SendMessageRequest posts one user turn. Empty content starts a greeting
// turn where nothing is persisted for the user.
type SendMessageRequest struct {
	Content string `json:"content"`
}
