package gemini

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"QuantAI/internal/domain/models"
)

// PolicyVersion identifies the template set under policy/.
const PolicyVersion = "v1"

// htfNotProvided is rendered when the user gave no higher-timeframe bias.
const htfNotProvided = "Not provided"

//go:embed policy
var policyFS embed.FS

// ResponseField is one key of the strict response object.
type ResponseField struct {
	Name        string
	Description string
	Array       bool
}

// ResponseFields is the response contract, in output order. All are required.
var ResponseFields = []ResponseField{
	{Name: "direction", Description: `"buy", "sell" or "no-trade"`},
	{Name: "entry_zone", Description: `single price or small range, e.g. "91750 - 91850"`},
	{Name: "stoploss", Description: "numeric price level"},
	{Name: "targets", Description: `array of target prices as strings, e.g. ["TP1 price", "TP2 price"]`, Array: true},
	{Name: "position_size_hint", Description: `very short sizing text, e.g. "Risk $10 (1% of $1000); approx 0.0077 BTC"`},
	{Name: "rr_ratio", Description: `risk:reward like "1:2.0"`},
	{Name: "reason", Description: "1-3 short sentences on why the setup is valid (trend, levels, structure)"},
	{Name: "warnings", Description: "1-2 short risk warnings or conditions to avoid or exit"},
}

// ResponseKeys returns the required response keys in order.
func ResponseKeys() []string {
	keys := make([]string, len(ResponseFields))
	for i, f := range ResponseFields {
		keys[i] = f.Name
	}
	return keys
}

// ResponseSchema builds the OpenAPI-subset schema sent with every request.
func ResponseSchema() *Schema {
	props := make(map[string]*Schema, len(ResponseFields))
	for _, f := range ResponseFields {
		if f.Array {
			props[f.Name] = &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}}
			continue
		}
		props[f.Name] = &Schema{Type: TypeString}
	}
	props["direction"].Enum = []string{
		string(models.DirectionBuy), string(models.DirectionSell), string(models.DirectionNoTrade),
	}
	return &Schema{
		Type:             TypeObject,
		Properties:       props,
		Required:         ResponseKeys(),
		PropertyOrdering: ResponseKeys(),
	}
}

// Policy renders the versioned system instructions and per-call prompts.
type Policy struct {
	version string
	system  *template.Template
	prompt  *template.Template
}

// LoadPolicy parses the templates of the given version.
func LoadPolicy(version string) (*Policy, error) {
	if version == "" {
		version = PolicyVersion
	}
	system, err := template.ParseFS(policyFS, "policy/"+version+"/system.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse system policy %s: %w", version, err)
	}
	prompt, err := template.ParseFS(policyFS, "policy/"+version+"/prompt.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse prompt policy %s: %w", version, err)
	}
	return &Policy{version: version, system: system, prompt: prompt}, nil
}

// Version returns the loaded template version.
func (p *Policy) Version() string { return p.version }

// SystemInstruction renders the system-level policy with the market allow-lists.
func (p *Policy) SystemInstruction() (string, error) {
	type market struct {
		Name    string
		Symbols string
	}
	data := struct {
		Markets    []market
		Fields     []ResponseField
		Directions string
	}{
		Fields:     ResponseFields,
		Directions: `"buy", "sell", "no-trade"`,
	}
	for _, m := range models.MarketTypes {
		data.Markets = append(data.Markets, market{
			Name:    string(m),
			Symbols: strings.Join(models.AllowedSymbols[m], ", "),
		})
	}

	var buf bytes.Buffer
	if err := p.system.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render system policy: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Prompt renders the per-call prompt for one form submission.
func (p *Policy) Prompt(in models.UserInput) (string, error) {
	if strings.TrimSpace(in.HTFTrend) == "" {
		in.HTFTrend = htfNotProvided
	}
	var buf bytes.Buffer
	if err := p.prompt.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}
