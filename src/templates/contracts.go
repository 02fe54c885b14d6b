package templates

import (
	"bytes"
	"castbook/src/types"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

// ContractData carries everything the contract layout substitutes. Optional
// fields render as "TBD" rather than failing, so generation is total over any
// booking record.
type ContractData struct {
	Code         string
	Title        string
	Category     types.BookingCategory
	Location     string
	StartsAt     time.Time
	EndsAt       time.Time
	Rate         *decimal.Decimal
	Currency     string
	Deliverables string
	UsageRights  string
	DueDate      *time.Time

	TalentName      string
	TalentStageName string
	ClientName      string
	ClientEmail     string
}

const placeholder = "TBD"

// The legal boilerplate shares one layout; only the clause table varies per
// booking category. Keeping clauses as data prevents the four near-identical
// template copies from drifting apart.
var categoryClauses = map[types.BookingCategory][]string{
	types.CATEGORY_MODELING: {
		"Talent grants Client the right to photograph Talent during the engagement dates listed above.",
		"Wardrobe, hair, and makeup call times will be communicated no later than 48 hours before the start date.",
		"Image usage is limited to the scope described under Usage Rights; any extension requires a separate agreement.",
	},
	types.CATEGORY_ACTING: {
		"Talent will perform the role described in the Deliverables section to the Client's reasonable direction.",
		"Scripts and materials will be provided to Talent no later than 72 hours before the start date.",
		"Residual usage beyond the scope described under Usage Rights requires a separate agreement.",
	},
	types.CATEGORY_COMMERCIAL: {
		"Talent's appearance will be used in commercial promotional material as described in the Deliverables section.",
		"Broadcast, print, and digital distribution are limited to the scope described under Usage Rights.",
		"Exclusivity against competing brands applies for the duration of the engagement unless waived in writing.",
	},
	types.CATEGORY_EVENT: {
		"Talent will appear in person at the event location for the dates and times listed above.",
		"Client covers reasonable travel and accommodation in addition to the compensation stated above.",
		"Recording or streaming of the appearance is limited to the scope described under Usage Rights.",
	},
}

var generalClauses = []string{
	"Talent will provide the services described in the Deliverables section during the engagement dates listed above.",
	"Any usage of the resulting material is limited to the scope described under Usage Rights.",
}

var contractTemplate = template.Must(template.New("contract").Funcs(template.FuncMap{
	"orTBD": orTBD,
	"date":  formatDate,
	"inc":   func(i int) int { return i + 1 },
}).Parse(`TALENT BOOKING CONTRACT {{.Code}}

{{.Title}}

This agreement is made between {{.ClientName}} ("Client") and {{.TalentDisplay}} ("Talent") for the engagement described below.

Booking Code:  {{.Code}}
Engagement:    {{.EngagementTitle}}
Category:      {{.Category}}
Location:      {{orTBD .Location}}
Start:         {{date .StartsAt}}
End:           {{date .EndsAt}}
Compensation:  {{.Compensation}}
{{- if .SigningDeadline}}
Sign By:       {{.SigningDeadline}}
{{- end}}

DELIVERABLES
{{orTBD .Deliverables}}

USAGE RIGHTS
{{orTBD .UsageRights}}

TERMS
{{- range $i, $clause := .Clauses}}
{{inc $i}}. {{$clause}}
{{- end}}

Client contact: {{orTBD .ClientEmail}}

Signed for the Client: _______________________
Signed by the Talent:  _______________________
`))

type contractView struct {
	Code            string
	Title           string
	EngagementTitle string
	Category        string
	Location        string
	StartsAt        time.Time
	EndsAt          time.Time
	Compensation    string
	SigningDeadline string
	Deliverables    string
	UsageRights     string
	TalentDisplay   string
	ClientName      string
	ClientEmail     string
	Clauses         []string
}

// Render produces the contract document body. It is deterministic and never
// fails: missing optional fields render as TBD, an unknown category falls
// back to the general clause set, and a talent without a profile is named by
// their legal name.
func Render(data ContractData) string {
	view := contractView{
		Code:            data.Code,
		Title:           orTBD(data.Title),
		EngagementTitle: orTBD(data.Title),
		Category:        string(categoryOrGeneral(data.Category)),
		Location:        data.Location,
		StartsAt:        data.StartsAt,
		EndsAt:          data.EndsAt,
		Compensation:    formatRate(data.Rate, data.Currency),
		Deliverables:    data.Deliverables,
		UsageRights:     data.UsageRights,
		TalentDisplay:   talentDisplayName(data),
		ClientName:      orTBD(data.ClientName),
		ClientEmail:     data.ClientEmail,
		Clauses:         ClausesFor(data.Category),
	}
	if data.DueDate != nil {
		view.SigningDeadline = formatDate(*data.DueDate)
	}
	var buf bytes.Buffer
	if err := contractTemplate.Execute(&buf, &view); err != nil {
		// Unreachable with a static layout, kept as a total fallback.
		return fmt.Sprintf("TALENT BOOKING CONTRACT %s\n\n%s\n", data.Code, view.Title)
	}
	return buf.String()
}

// ClausesFor returns the clause set for a category, falling back to the
// general clauses for unknown or general categories.
func ClausesFor(category types.BookingCategory) []string {
	if clauses, ok := categoryClauses[category]; ok {
		return clauses
	}
	return generalClauses
}

func categoryOrGeneral(category types.BookingCategory) types.BookingCategory {
	if _, ok := categoryClauses[category]; ok {
		return category
	}
	return types.CATEGORY_GENERAL
}

func talentDisplayName(data ContractData) string {
	stage := strings.TrimSpace(data.TalentStageName)
	name := strings.TrimSpace(data.TalentName)
	if stage != "" && name != "" {
		return fmt.Sprintf("%s (%s)", stage, name)
	}
	if stage != "" {
		return stage
	}
	return orTBD(name)
}

func formatRate(rate *decimal.Decimal, currency string) string {
	if rate == nil {
		return placeholder
	}
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %s", strings.ToUpper(currency), rate.StringFixed(2))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return t.Format("January 2, 2006 15:04 MST")
}

func orTBD(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
