package model

// LabContent is the teaching material of a single lab.
type LabContent struct {
	Title          string   `json:"title" yaml:"title"`
	Reading        string   `json:"reading" yaml:"reading"`                 // long-form markdown, embedded verbatim
	Exercises      []string `json:"exercises" yaml:"exercises"`             // ordered exercise descriptions
	LabDescription string   `json:"lab_description" yaml:"lab_description"` // project brief
}

// Catalog maps skill -> lab id -> lab content.
type Catalog map[string]map[string]LabContent

// LabSummary is a lab entry without its reading text.
type LabSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SkillSummary lists the labs available for one skill track.
type SkillSummary struct {
	Skill string       `json:"skill"`
	Labs  []LabSummary `json:"labs"`
}
