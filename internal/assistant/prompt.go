// Package assistant implements the news chat assistant. It wraps an
// LLM provider and always produces a usable reply string; provider
// failures degrade to fixed apology messages instead of errors.
package assistant

import "fmt"

// chatPromptTemplate frames a single question for the one-shot web
// chat endpoint.
const chatPromptTemplate = `You are a helpful news assistant that can analyze and discuss news articles.
The user is using a news sentiment analyzer that shows sentiment scores for articles.

User Question: %s

Please provide a helpful, informative response that:
1. Directly addresses the user's question
2. Maintains a professional and engaging tone
3. Is concise and clear
4. If the question is about sentiment analysis, explain how it works

Your response:`

// historySystemPrompt is the system message for multi-turn
// conversations (CLI and WebSocket chat).
const historySystemPrompt = `You are a helpful news assistant that can analyze and discuss news articles. The user is using a news sentiment analyzer that shows sentiment scores for articles. Provide helpful, informative responses that directly address the user's question, maintain a professional and engaging tone, and stay concise and clear. If the question is about sentiment analysis, explain how it works.`

// BuildPrompt renders the one-shot chat prompt for a user question.
func BuildPrompt(question string) string {
	return fmt.Sprintf(chatPromptTemplate, question)
}
