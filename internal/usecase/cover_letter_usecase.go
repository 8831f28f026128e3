package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/fadilmartias/resume-generator/internal/service"
)

// CoverLetterUsecase writes a tailored cover letter from the session record
// and a target job description. Unlike the core extraction components this is
// an outer surface: a generation failure surfaces to the handler as an error.
type CoverLetterUsecase struct {
	llm service.TextGenerator
}

func NewCoverLetterUsecase(llm service.TextGenerator) *CoverLetterUsecase {
	return &CoverLetterUsecase{llm: llm}
}

func (uc *CoverLetterUsecase) GenerateCoverLetter(ctx context.Context, record model.CandidateRecord, jobDescription string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", fmt.Errorf("job description is required")
	}

	prompt := fmt.Sprintf(`Write a professional cover letter based on:

---CANDIDATE PROFILE---
%s

---POSITION DETAILS---
%s

Requirements:
1. 3-4 paragraphs
2. Highlight relevant skills
3. Professional tone
4. Return only the letter body, no placeholders for unknown information`, formatProfile(record), jobDescription)

	letter, err := uc.llm.GenerateText(ctx, prompt, service.GenerationOptions{
		Temperature:     0.5,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return "", fmt.Errorf("cover letter generation failed: %w", err)
	}
	return strings.TrimSpace(letter), nil
}

// formatProfile serializes the record into the plain-text profile the prompt
// consumes.
func formatProfile(record model.CandidateRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nEmail: %s\n", record.Name, record.Phone, record.Email)
	if record.Linkedin != "" {
		fmt.Fprintf(&b, "LinkedIn: %s\n", record.Linkedin)
	}
	if record.Github != "" {
		fmt.Fprintf(&b, "GitHub: %s\n", record.Github)
	}

	for _, e := range record.Educations {
		fmt.Fprintf(&b, "\nEducation: %s, %s (%s)\n", e.University, e.Degree, e.Dates)
	}
	for _, w := range record.WorkExperiences {
		fmt.Fprintf(&b, "\nExperience: %s at %s (%s)\n%s\n", w.Title, w.Company, w.Dates, w.Description)
	}
	for _, p := range record.Projects {
		fmt.Fprintf(&b, "\nProject: %s (%s)\n%s\n", p.Name, p.Date, p.Description)
	}
	if record.Skills != "" {
		fmt.Fprintf(&b, "\nSkills: %s\n", record.Skills)
	}

	return b.String()
}
