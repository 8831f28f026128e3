package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/fadilmartias/resume-generator/internal/service"
	"github.com/fadilmartias/resume-generator/internal/util"
	"github.com/tidwall/gjson"
)

// maxPromptChars bounds how much of the document goes into the extraction
// prompt so one oversized upload cannot blow the model context window.
const maxPromptChars = 4000

const (
	WarnParseFailed   = "could not extract structured data from the document, please fill in your details manually"
	WarnNameCollision = "extracted name matches a project title and was discarded, please enter your name manually"
)

// ParseUsecase turns freeform resume text into a CandidateRecord. Parse is
// total: whatever the input or the model does, the caller always gets a valid,
// fully defaulted record plus user-facing warnings, never an error.
type ParseUsecase struct {
	llm service.TextGenerator
}

func NewParseUsecase(llm service.TextGenerator) *ParseUsecase {
	return &ParseUsecase{llm: llm}
}

func (uc *ParseUsecase) Parse(ctx context.Context, text string) (model.CandidateRecord, []string) {
	record := model.NewCandidateRecord()
	warnings := []string{}

	if strings.TrimSpace(text) == "" {
		return record, warnings
	}

	prompt := buildExtractionPrompt(text)
	reply, err := uc.llm.GenerateText(ctx, prompt, service.GenerationOptions{
		Temperature:     0.1,
		MaxOutputTokens: 2048,
		JSONOutput:      true,
	})
	if err != nil {
		log.Printf("resume extraction failed: %v", err)
		return record, append(warnings, WarnParseFailed)
	}

	raw := util.StripCodeFence(reply)
	if !gjson.Valid(raw) {
		// The reply is often truncated JSON. One bounded repair pass, then
		// give up and fall back to the empty record.
		raw = util.RepairJSONLike(raw)
		if !gjson.Valid(raw) {
			log.Printf("resume extraction returned unrepairable payload: %s", reply)
			return record, append(warnings, WarnParseFailed)
		}
	}

	record = recordFromJSON(raw)
	record.Normalize()

	// A project title must never pass as the candidate's personal name.
	for _, p := range record.Projects {
		if record.Name != "" && strings.EqualFold(record.Name, p.Name) {
			record.Name = ""
			warnings = append(warnings, WarnNameCollision)
			break
		}
	}

	return record, warnings
}

func buildExtractionPrompt(text string) string {
	if len(text) > maxPromptChars {
		// back off to a rune boundary so the cut never splits a character
		cut := maxPromptChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	return fmt.Sprintf(`You are extracting structured data from resume text.

Extraction rules:
1. "name" is the candidate's personal name. It usually sits in the first lines of the document, next to contact details (phone, email), and is capitalized like a person's name. Do NOT use a project title or a company name as the personal name.
2. Copy dates, locations and titles exactly as written. Do not invent values; use "" for anything not present.
3. "description" fields keep the original prose, unsplit.
4. "skills" is one free-text string.

Return STRICTLY one JSON object with this schema and nothing else:
{
  "name": "",
  "phone": "",
  "email": "",
  "linkedin": "",
  "github": "",
  "educations": [{"university": "", "degree": "", "dates": "", "gpa": "", "location": "", "bullets": [""]}],
  "work_experiences": [{"title": "", "company": "", "dates": "", "location": "", "description": ""}],
  "projects": [{"name": "", "date": "", "context": "", "description": ""}],
  "skills": ""
}

Resume text:
%s
`, text)
}

// recordFromJSON picks fields out of a decoded reply one by one. A field of
// the wrong type counts as absent, unknown keys are ignored, so a partially
// wrong reply still yields whatever was usable.
func recordFromJSON(raw string) model.CandidateRecord {
	record := model.NewCandidateRecord()

	record.Name = stringField(raw, "name")
	record.Phone = stringField(raw, "phone")
	record.Email = stringField(raw, "email")
	record.Linkedin = stringField(raw, "linkedin")
	record.Github = stringField(raw, "github")
	record.Skills = stringField(raw, "skills")

	if v := gjson.Get(raw, "educations"); v.IsArray() {
		for _, e := range v.Array() {
			entry := model.EducationEntry{
				University: stringField(e.Raw, "university"),
				Degree:     stringField(e.Raw, "degree"),
				Dates:      stringField(e.Raw, "dates"),
				GPA:        stringField(e.Raw, "gpa"),
				Location:   stringField(e.Raw, "location"),
				Bullets:    []string{},
			}
			if b := gjson.Get(e.Raw, "bullets"); b.IsArray() {
				for _, line := range b.Array() {
					if line.Type == gjson.String && line.String() != "" {
						entry.Bullets = append(entry.Bullets, line.String())
					}
				}
			}
			record.Educations = append(record.Educations, entry)
		}
	}

	if v := gjson.Get(raw, "work_experiences"); v.IsArray() {
		for _, w := range v.Array() {
			record.WorkExperiences = append(record.WorkExperiences, model.WorkEntry{
				Title:       stringField(w.Raw, "title"),
				Company:     stringField(w.Raw, "company"),
				Dates:       stringField(w.Raw, "dates"),
				Location:    stringField(w.Raw, "location"),
				Description: stringField(w.Raw, "description"),
			})
		}
	}

	if v := gjson.Get(raw, "projects"); v.IsArray() {
		for _, p := range v.Array() {
			record.Projects = append(record.Projects, model.ProjectEntry{
				Name:        stringField(p.Raw, "name"),
				Date:        stringField(p.Raw, "date"),
				Context:     stringField(p.Raw, "context"),
				Description: stringField(p.Raw, "description"),
			})
		}
	}

	return record
}

func stringField(raw, path string) string {
	v := gjson.Get(raw, path)
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}
