package models

// Conversation — диалог с собеседником.
type Conversation struct {
	ID   string  `json:"_id"`
	Peer UserRef `json:"user"`
}

// Message — сообщение диалога. Порядок задаёт бэкенд.
type Message struct {
	ID             string `json:"_id"`
	Text           string `json:"text"`
	ConversationID string `json:"chatId,omitempty"`
	Sender         string `json:"sender,omitempty"`
}

// SendMessageRequest — тело POST /messages.
type SendMessageRequest struct {
	ChatID string `json:"chatId"`
	Text   string `json:"text"`
}
