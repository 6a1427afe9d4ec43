package assistant

import "fmt"

// Prompt builders for the four document operations. Each receives already
// truncated document text; truncation happens once in the service so every
// prompt stays within the model's input budget.

func summarizePrompt(documentText string) string {
	return fmt.Sprintf("Summarize this document in under 150 words:\n\n%s", documentText)
}

func askPrompt(documentText, history, question string) string {
	return fmt.Sprintf(`You are a helpful assistant. Answer questions strictly based on the document. Include paragraph-based justification.

Document:
%s

Chat History:
%s

User Question:
%s

Answer (with justification):`, documentText, history, question)
}

func challengePrompt(documentText string, count int) string {
	return fmt.Sprintf("Generate %d logic-based or comprehension questions from this document:\n\n%s", count, documentText)
}

func evaluatePrompt(documentText, question, userAnswer string) string {
	return fmt.Sprintf(`Evaluate the following user answer based on the document provided. Justify if it's correct or not.

Document:
%s

Question:
%s

User Answer:
%s

Feedback (with justification):`, documentText, question, userAnswer)
}
