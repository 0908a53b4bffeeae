package model

// ChatRequest is a learner question asked from within a lab.
type ChatRequest struct {
	Question string `json:"question"`
	LabID    string `json:"lab_id"`
	Skill    string `json:"skill"`
}

// ChatResponse is returned for both admitted and rejected questions.
// Sources is only populated when Relevant is true.
type ChatResponse struct {
	Response string   `json:"response"`
	Relevant bool     `json:"relevant"`
	Sources  []string `json:"sources"`
}
