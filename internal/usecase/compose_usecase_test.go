package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fadilmartias/resume-generator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposeFixture(t *testing.T, gen *scriptedGenerator, renderer *fakeRenderer) *ComposeUsecase {
	t.Helper()
	uc, err := NewComposeUsecase(NewRankUsecase(gen), NewBulletsUsecase(gen), renderer, "")
	require.NoError(t, err)
	return uc
}

func sampleRecord() model.CandidateRecord {
	record := model.NewCandidateRecord()
	record.Name = "Jane Doe"
	record.Phone = "555-1234"
	record.Email = "jane@x.com"
	record.Skills = "Go, SQL"
	record.Educations = []model.EducationEntry{{
		University: "MIT",
		Degree:     "BSc CS",
		Dates:      "2018-2022",
		Bullets:    []string{"Dean's list"},
	}}
	record.WorkExperiences = []model.WorkEntry{
		{Title: "Engineer", Company: "Acme", Dates: "2022-2023", Description: "built billing"},
		{Title: "Senior Engineer", Company: "Globex", Dates: "2023-2025", Description: "led platform team"},
	}
	record.Projects = []model.ProjectEntry{
		{Name: "PicSpeaks", Date: "Oct 2024", Context: "Hackathon", Description: "image captioning"},
	}
	return record
}

func TestComposeResume_RankedSlotsAndBullets(t *testing.T) {
	gen := &scriptedGenerator{replies: []string{
		"[1, 0]",            // work ranking
		"- Led team of 5",   // bullets for work[1]
		"- Shipped billing", // bullets for work[0]
		"[0]",               // project ranking
		"- Built captioning demo",
	}}
	uc := newComposeFixture(t, gen, &fakeRenderer{})

	artifact, err := uc.ComposeResume(context.Background(), sampleRecord(), "platform engineer role")

	require.NoError(t, err)
	assert.Equal(t, 5, gen.calls)
	assert.Contains(t, artifact.HTML, "Jane Doe")
	assert.Contains(t, artifact.HTML, "MIT")
	assert.Contains(t, artifact.HTML, "<li>Led team of 5</li>")
	assert.Contains(t, artifact.HTML, "<li>Shipped billing</li>")
	assert.Contains(t, artifact.HTML, "<li>Built captioning demo</li>")

	// ranking [1, 0] puts Globex in the first work slot
	globex := strings.Index(artifact.HTML, "Globex")
	acme := strings.Index(artifact.HTML, "Acme")
	require.GreaterOrEqual(t, globex, 0)
	require.GreaterOrEqual(t, acme, 0)
	assert.Less(t, globex, acme)

	assert.True(t, strings.HasPrefix(artifact.Filename, "Jane_Doe_"))
	assert.Nil(t, artifact.PDF)
}

func TestComposeResume_EscapesUserContent(t *testing.T) {
	gen := &scriptedGenerator{}
	uc := newComposeFixture(t, gen, &fakeRenderer{})

	record := model.NewCandidateRecord()
	record.Name = `Jane <script>alert("x")</script> & Doe`
	record.Skills = "C++ & Go"

	artifact, err := uc.ComposeResume(context.Background(), record, "")

	require.NoError(t, err)
	assert.Equal(t, 0, gen.calls)
	assert.NotContains(t, artifact.HTML, "<script>")
	assert.Contains(t, artifact.HTML, "&lt;script&gt;")
	assert.Contains(t, artifact.HTML, "C++ &amp; Go")
}

func TestComposeResume_CapsSlots(t *testing.T) {
	record := sampleRecord()
	record.WorkExperiences = append(record.WorkExperiences,
		model.WorkEntry{Title: "Intern", Company: "Initech", Description: "made coffee"},
	)

	// empty job description: ranking is identity without generation calls,
	// bullet synthesis still runs once per filled slot
	gen := &scriptedGenerator{replies: []string{
		"- a", "- b", "- c",
	}}
	uc := newComposeFixture(t, gen, &fakeRenderer{})

	artifact, err := uc.ComposeResume(context.Background(), record, "")

	require.NoError(t, err)
	assert.Equal(t, 3, gen.calls)
	assert.Contains(t, artifact.HTML, "Acme")
	assert.Contains(t, artifact.HTML, "Globex")
	assert.NotContains(t, artifact.HTML, "Initech")
}

func TestRenderPDF_FillsArtifact(t *testing.T) {
	renderer := &fakeRenderer{pdf: []byte("%PDF-1.7 fake")}
	uc := newComposeFixture(t, &scriptedGenerator{}, renderer)

	artifact := &ResumeArtifact{HTML: "<html></html>", Filename: "resume_20260831_1200"}
	err := uc.RenderPDF(context.Background(), artifact)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 fake"), artifact.PDF)
	assert.Equal(t, 1, renderer.calls)
}

func TestRenderPDF_FailureKeepsHTML(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("chrome not found")}
	uc := newComposeFixture(t, &scriptedGenerator{}, renderer)

	artifact := &ResumeArtifact{HTML: "<html></html>"}
	err := uc.RenderPDF(context.Background(), artifact)

	require.Error(t, err)
	assert.Nil(t, artifact.PDF)
	assert.Equal(t, "<html></html>", artifact.HTML)
}
