package usecase

// defaultResumeLayout is the built-in layout used when no template file is
// configured. Slots receive pre-escaped strings and substitute them verbatim.
const defaultResumeLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}} - Resume</title>
<style>
  body { font-family: Georgia, "Times New Roman", serif; font-size: 11pt; color: #1a1a1a; margin: 40px 48px; }
  h1 { font-size: 20pt; margin: 0; text-align: center; }
  .contact { text-align: center; font-size: 9.5pt; margin-bottom: 14px; }
  h2 { font-size: 12pt; border-bottom: 1px solid #1a1a1a; text-transform: uppercase; letter-spacing: 1px; margin: 14px 0 6px; }
  .entry-head { display: flex; justify-content: space-between; font-weight: bold; }
  .entry-sub { display: flex; justify-content: space-between; font-style: italic; font-size: 10pt; }
  ul { margin: 4px 0 8px; padding-left: 18px; }
  li { margin-bottom: 2px; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<div class="contact">{{.Phone}} | {{.Email}} | {{.Linkedin}} | {{.Github}}</div>

<h2>Education</h2>
<div class="entry-head"><span>{{.Education.University}}</span><span>{{.Education.Dates}}</span></div>
<div class="entry-sub"><span>{{.Education.Degree}} {{.Education.GPA}}</span><span>{{.Education.Location}}</span></div>
<ul>
{{.Education.Bullets}}
</ul>

<h2>Experience</h2>
{{range .Work}}
<div class="entry-head"><span>{{.Title}}</span><span>{{.Dates}}</span></div>
<div class="entry-sub"><span>{{.Company}}</span><span>{{.Location}}</span></div>
<ul>
{{.Bullets}}
</ul>
{{end}}

<h2>Projects</h2>
{{range .Projects}}
<div class="entry-head"><span>{{.Name}}</span><span>{{.Date}}</span></div>
<div class="entry-sub"><span>{{.Context}}</span><span></span></div>
<ul>
{{.Bullets}}
</ul>
{{end}}

<h2>Skills</h2>
<p>{{.Skills}}</p>
</body>
</html>
`
