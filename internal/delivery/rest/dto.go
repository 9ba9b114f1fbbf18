package rest

import "github.com/aliskhannn/vocab-quiz-bot/internal/domain/entities"

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// GroupResponse describes one vocabulary group.
type GroupResponse struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

// QuestionResponse is a generated multiple choice card.
type QuestionResponse struct {
	Word           string   `json:"word"`
	CorrectMeaning string   `json:"correctMeaning"`
	Options        []string `json:"options"`
	CorrectIndex   int      `json:"correctIndex"`
}

// QuestionsResponse is a question set for one group in quiz order.
type QuestionsResponse struct {
	Group     string             `json:"group"`
	Questions []QuestionResponse `json:"questions"`
}

// ResultRequest is the final score of a quiz played in the browser.
type ResultRequest struct {
	Score *int `json:"score"`
	Total *int `json:"total"`
}

func toGroupResponses(groups []entities.GroupSummary) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{Name: g.Name, Words: g.Words})
	}
	return out
}

func toQuestionsResponse(group string, questions []entities.Question) QuestionsResponse {
	resp := QuestionsResponse{
		Group:     group,
		Questions: make([]QuestionResponse, 0, len(questions)),
	}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, QuestionResponse{
			Word:           q.Word,
			CorrectMeaning: q.CorrectMeaning,
			Options:        q.Options,
			CorrectIndex:   q.CorrectIndex,
		})
	}
	return resp
}
