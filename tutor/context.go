package tutor

import (
	"strings"

	"github.com/SaiNageswarS/lab-tutor-gateway/model"
)

const (
	sectionSeparator  = "\n\n"
	exerciseSeparator = ", "
)

// AssembleContext renders a lab as the grounding block given to the model:
// title, reading, exercises and project brief, in that order. Text is
// embedded verbatim with no truncation.
func AssembleContext(lab model.LabContent) string {
	sections := []string{
		"Lab Title: " + lab.Title,
		"Reading Material:\n" + lab.Reading,
		"Exercises: " + strings.Join(lab.Exercises, exerciseSeparator),
		"Lab Project: " + lab.LabDescription,
	}
	return strings.Join(sections, sectionSeparator)
}
