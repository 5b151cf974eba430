package classify

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Result is one classification as recorded in the output document.
type Result struct {
	Platform           string   `json:"platform"`
	Repo               string   `json:"repo"`
	Name               string   `json:"name"`
	GenericCategories  []string `json:"generic_categories"`
	SpecificCategories []string `json:"specific_categories"`
	ReadmeMissing      bool     `json:"readme_missing"`
	Confidence         float64  `json:"confidence"`
}

// ErrNoJSON means the model response contained no JSON array at all.
var ErrNoJSON = errors.New("no JSON array found in response")

var codeFence = regexp.MustCompile("(?i)```(?:json)?")

// ParseResponse pulls the first classification object out of a model
// response. Models wrap the answer in code fences or prose despite the
// prompt, so the parser strips fencing, seeks the first '[' and decodes the
// first complete JSON array from there, ignoring anything after it. Field
// extraction goes through gjson so a response with a string-typed confidence
// or extra fields still yields a usable result.
func ParseResponse(text string) (Result, error) {
	cleaned := strings.TrimSpace(text)
	if strings.Contains(cleaned, "```") {
		parts := codeFence.Split(cleaned, -1)
		if len(parts) >= 2 {
			cleaned = parts[1]
		}
	}

	start := strings.Index(cleaned, "[")
	if start == -1 {
		return Result{}, ErrNoJSON
	}

	var raw json.RawMessage
	dec := json.NewDecoder(strings.NewReader(cleaned[start:]))
	if err := dec.Decode(&raw); err != nil {
		return Result{}, err
	}

	parsed := gjson.ParseBytes(raw)
	if !parsed.IsArray() || len(parsed.Array()) == 0 {
		return Result{}, ErrNoJSON
	}
	first := parsed.Array()[0]

	result := Result{
		Platform:           first.Get("platform").String(),
		Repo:               first.Get("repo").String(),
		Name:               first.Get("name").String(),
		GenericCategories:  stringList(first.Get("generic_categories")),
		SpecificCategories: stringList(first.Get("specific_categories")),
		ReadmeMissing:      first.Get("readme_missing").Bool(),
		Confidence:         first.Get("confidence").Float(),
	}
	return result, nil
}

func stringList(v gjson.Result) []string {
	var out []string
	for _, item := range v.Array() {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
