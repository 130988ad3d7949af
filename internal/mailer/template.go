package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"unicode"

	"github.com/mailpoll/mailpoll-services/api/internal/survey/domain"
)

var surveyTemplate = template.Must(template.New("survey").Parse(`<html>
<body>
	<div style="text-align: center;">
		<h3>I'd like your input!</h3>
		<p>Please answer the following question:</p>
		<p>{{.Body}}</p>
		{{range .Choices}}
		<div>
			<a href="{{.URL}}">{{.Label}}</a>
		</div>
		{{end}}
	</div>
</body>
</html>`))

type surveyTemplateData struct {
	Body    string
	Choices []surveyChoiceLink
}

type surveyChoiceLink struct {
	Label string
	URL   string
}

// RenderSurveyEmail produces the HTML body for a survey, with one response
// link per choice pointing at the public click-through endpoint.
func RenderSurveyEmail(survey *domain.Survey, baseURL string, choices []string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")

	links := make([]surveyChoiceLink, 0, len(choices))
	for _, choice := range choices {
		links = append(links, surveyChoiceLink{
			Label: titleCase(choice),
			URL:   fmt.Sprintf("%s/api/surveys/%s/%s", base, survey.ID, choice),
		})
	}

	var builder strings.Builder
	err := surveyTemplate.Execute(&builder, surveyTemplateData{
		Body:    survey.Body,
		Choices: links,
	})
	if err != nil {
		return "", err
	}
	return builder.String(), nil
}

func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
