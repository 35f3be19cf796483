package domain

// ChatMessage is one turn of the support chatbot conversation as supplied by
// the client.
type ChatMessage struct {
	From string
	Text string
}

const ChatRoleUser = "user"
