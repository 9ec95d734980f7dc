package domain

import "time"

const (
	ChatOpen   = "open"
	ChatClosed = "closed"
)

// ChatMessage is embedded in the chat document, mirroring how the thread is
// read: always as a whole, newest appended last.
type ChatMessage struct {
	SenderID   string    `json:"sender_id" dynamodbav:"sender_id"`
	SenderName string    `json:"sender_name" dynamodbav:"sender_name"`
	Body       string    `json:"body" dynamodbav:"body"`
	IsAdmin    bool      `json:"is_admin" dynamodbav:"is_admin"`
	Timestamp  time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// Chat is a single support thread. One per student, created lazily on first
// access.
type Chat struct {
	ChatID        string        `json:"id" dynamodbav:"chat_id"`
	UserID        string        `json:"user_id" dynamodbav:"user_id"`
	Messages      []ChatMessage `json:"messages" dynamodbav:"messages"`
	Status        string        `json:"status" dynamodbav:"status"`
	LastMessageAt time.Time     `json:"last_message_at" dynamodbav:"last_message_at"`
	CreatedAt     time.Time     `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time     `json:"updated" dynamodbav:"updated_at"`
	User          *UserSummary  `json:"user,omitempty" dynamodbav:"-"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}
