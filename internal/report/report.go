package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/davidjspooner/printer-probe/internal/diag"
	"github.com/davidjspooner/printer-probe/internal/framework"
)

type templatedReport struct {
	extra        framework.Config
	textTemplate *template.Template
}

func init() {
	Register("template", newTemplatedReport)
	Register("", newTemplatedReport)
}

// Users can shape the batch output with their own template; the default
// concatenates each target's plain-text transcript.
const defaultTemplateText = `{{range .results}}{{.Text}}
{{end}}`

func newTemplatedReport(args framework.Config) (Interface, error) {
	r := &templatedReport{}

	filename, err := framework.ConsumeOptionalArg(args, "template_file", "")
	if err != nil {
		return nil, err
	}
	templateText, err := framework.ConsumeOptionalArg(args, "template_inline", "")
	if err != nil {
		return nil, err
	}
	if filename != "" && templateText != "" {
		return nil, fmt.Errorf("template_file and template_inline are mutually exclusive")
	}
	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		templateText = string(content)
	}
	if templateText == "" {
		templateText = defaultTemplateText
	}

	r.textTemplate, err = template.New("template").Parse(templateText)
	if err != nil {
		return nil, err
	}
	r.extra = args
	return r, nil
}

// resultView is what templates see for each target, pre-rendering the parts
// the text form already knows how to format.
type resultView struct {
	Target  string
	Summary string
	Text    string
	Result  *diag.Result
}

func (r *templatedReport) Generate(ctx context.Context, results []*diag.Result) (string, error) {
	views := make([]resultView, 0, len(results))
	for _, result := range results {
		text := &strings.Builder{}
		result.WriteText(text)
		views = append(views, resultView{
			Target:  result.Target,
			Summary: result.Summary(),
			Text:    text.String(),
			Result:  result,
		})
	}

	buffer := bytes.Buffer{}
	data := framework.Config{
		"results": views,
		"extra":   r.extra,
	}
	if err := r.textTemplate.Execute(&buffer, &data); err != nil {
		return "", err
	}
	return buffer.String(), nil
}
