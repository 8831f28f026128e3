package usecase

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"
	"text/template"
	"time"

	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/fadilmartias/resume-generator/internal/service"
	"github.com/fadilmartias/resume-generator/internal/util"
)

// The layout carries two work slots and two project slots, which realizes
// the "at most 4 selected experiences in total" rule structurally.
const (
	maxWorkSlots    = 2
	maxProjectSlots = 2
	bulletsPerEntry = 3
)

// ResumeArtifact is one composed document. HTML is always present; PDF is
// filled only when rendering was requested and succeeded.
type ResumeArtifact struct {
	HTML     string
	PDF      []byte
	Filename string
}

// ComposeUsecase merges a candidate record, ranked experience and synthesized
// bullets into the layout template and optionally renders it to PDF.
type ComposeUsecase struct {
	rank     *RankUsecase
	bullets  *BulletsUsecase
	renderer service.DocumentRenderer
	tmpl     *template.Template
}

func NewComposeUsecase(rank *RankUsecase, bullets *BulletsUsecase, renderer service.DocumentRenderer, layoutHTML string) (*ComposeUsecase, error) {
	if layoutHTML == "" {
		layoutHTML = defaultResumeLayout
	}
	tmpl, err := template.New("resume").Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("invalid resume layout: %w", err)
	}
	return &ComposeUsecase{rank: rank, bullets: bullets, renderer: renderer, tmpl: tmpl}, nil
}

// ComposeResume builds the HTML artifact. Ranking and bullet synthesis
// degrade internally, so this only fails when template execution does.
func (uc *ComposeUsecase) ComposeResume(ctx context.Context, record model.CandidateRecord, jobDescription string) (*ResumeArtifact, error) {
	data := layoutData{
		Name:     html.EscapeString(record.Name),
		Phone:    html.EscapeString(record.Phone),
		Email:    html.EscapeString(record.Email),
		Linkedin: html.EscapeString(record.Linkedin),
		Github:   html.EscapeString(record.Github),
		Skills:   html.EscapeString(record.Skills),
	}

	if len(record.Educations) > 0 {
		edu := record.Educations[0]
		data.Education = educationBlock{
			University: html.EscapeString(edu.University),
			Degree:     html.EscapeString(edu.Degree),
			Dates:      html.EscapeString(edu.Dates),
			GPA:        html.EscapeString(edu.GPA),
			Location:   html.EscapeString(edu.Location),
			Bullets:    renderBulletItems(edu.Bullets),
		}
	}

	workOrder := uc.rank.Rank(ctx, summarizeWork(record.WorkExperiences), jobDescription)
	for slot := 0; slot < maxWorkSlots && slot < len(workOrder); slot++ {
		entry := record.WorkExperiences[workOrder[slot]]
		data.Work[slot] = experienceBlock{
			Title:    html.EscapeString(entry.Title),
			Company:  html.EscapeString(entry.Company),
			Dates:    html.EscapeString(entry.Dates),
			Location: html.EscapeString(entry.Location),
			Bullets:  renderBulletItems(uc.bullets.Synthesize(ctx, entry.Description, bulletsPerEntry, jobDescription)),
		}
	}

	projectOrder := uc.rank.Rank(ctx, summarizeProjects(record.Projects), jobDescription)
	for slot := 0; slot < maxProjectSlots && slot < len(projectOrder); slot++ {
		entry := record.Projects[projectOrder[slot]]
		data.Projects[slot] = projectBlock{
			Name:    html.EscapeString(entry.Name),
			Date:    html.EscapeString(entry.Date),
			Context: html.EscapeString(entry.Context),
			Bullets: renderBulletItems(uc.bullets.Synthesize(ctx, entry.Description, bulletsPerEntry, jobDescription)),
		}
	}

	var buf bytes.Buffer
	if err := uc.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to fill resume layout: %w", err)
	}

	return &ResumeArtifact{
		HTML:     buf.String(),
		Filename: util.SanitizeFilename(record.Name, "resume", time.Now()),
	}, nil
}

// RenderPDF renders a composed artifact. The HTML artifact stays valid when
// this fails, so callers can still hand something to the user.
func (uc *ComposeUsecase) RenderPDF(ctx context.Context, artifact *ResumeArtifact) error {
	pdf, err := uc.renderer.RenderHTMLToPDF(ctx, artifact.HTML)
	if err != nil {
		return fmt.Errorf("pdf rendering failed: %w", err)
	}
	artifact.PDF = pdf
	return nil
}

func summarizeWork(entries []model.WorkEntry) []string {
	summaries := make([]string, len(entries))
	for i, e := range entries {
		summaries[i] = fmt.Sprintf("%s at %s (%s): %s", e.Title, e.Company, e.Dates, e.Description)
	}
	return summaries
}

func summarizeProjects(entries []model.ProjectEntry) []string {
	summaries := make([]string, len(entries))
	for i, e := range entries {
		summaries[i] = fmt.Sprintf("%s (%s, %s): %s", e.Name, e.Date, e.Context, e.Description)
	}
	return summaries
}

// renderBulletItems escapes each bullet and joins them as list items. The
// layout slots substitute strings verbatim, so escaping happens here.
func renderBulletItems(bullets []string) string {
	if len(bullets) == 0 {
		return ""
	}
	items := make([]string, len(bullets))
	for i, b := range bullets {
		items[i] = "<li>" + html.EscapeString(b) + "</li>"
	}
	return strings.Join(items, "\n")
}

type layoutData struct {
	Name     string
	Phone    string
	Email    string
	Linkedin string
	Github   string

	Education educationBlock
	Work      [maxWorkSlots]experienceBlock
	Projects  [maxProjectSlots]projectBlock
	Skills    string
}

type educationBlock struct {
	University string
	Degree     string
	Dates      string
	GPA        string
	Location   string
	Bullets    string
}

type experienceBlock struct {
	Title    string
	Company  string
	Dates    string
	Location string
	Bullets  string
}

type projectBlock struct {
	Name    string
	Date    string
	Context string
	Bullets string
}
