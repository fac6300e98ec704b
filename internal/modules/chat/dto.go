package chat

// ChatRequest allows an empty user_input; a blank utterance gets the prompt reply.
type ChatRequest struct {
	UserInput *string `json:"user_input" binding:"required"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
