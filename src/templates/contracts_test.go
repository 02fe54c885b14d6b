package templates

import (
	"castbook/src/types"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fullData() ContractData {
	rate := decimal.NewFromFloat(1500)
	due := time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)
	return ContractData{
		Code:            "BK-2025-0042",
		Title:           "Summer Campaign Shoot",
		Category:        types.CATEGORY_MODELING,
		Location:        "Studio 4, Brooklyn NY",
		StartsAt:        time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
		EndsAt:          time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC),
		Rate:            &rate,
		Currency:        "usd",
		Deliverables:    "Full day editorial shoot, 20 retouched images",
		UsageRights:     "Digital and print, North America, 12 months",
		DueDate:         &due,
		TalentName:      "Jordan Reyes",
		TalentStageName: "Jordy R",
		ClientName:      "Acme Apparel",
		ClientEmail:     "bookings@acme.example",
	}
}

func TestRenderContainsBookingDetails(t *testing.T) {
	out := Render(fullData())

	assert.Contains(t, out, "TALENT BOOKING CONTRACT BK-2025-0042")
	assert.Contains(t, out, "Summer Campaign Shoot")
	assert.Contains(t, out, "Jordy R (Jordan Reyes)")
	assert.Contains(t, out, "Acme Apparel")
	assert.Contains(t, out, "USD 1500.00")
	assert.Contains(t, out, "Sign By:")
	assert.Contains(t, out, "Studio 4, Brooklyn NY")
	assert.NotContains(t, out, "TBD")
}

func TestRenderIsDeterministic(t *testing.T) {
	data := fullData()
	first := Render(data)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Render(data))
	}
}

func TestRenderMissingFieldsFallBackToTBD(t *testing.T) {
	out := Render(ContractData{Code: "BK-2025-0001"})

	assert.Contains(t, out, "TALENT BOOKING CONTRACT BK-2025-0001")
	assert.Contains(t, out, "Location:      TBD")
	assert.Contains(t, out, "Compensation:  TBD")
	assert.NotContains(t, out, "Sign By:")
	// Deliverables and usage rights sections still render.
	assert.Contains(t, out, "DELIVERABLES\nTBD")
	assert.Contains(t, out, "USAGE RIGHTS\nTBD")
}

func TestRenderCategoryClauses(t *testing.T) {
	data := fullData()

	data.Category = types.CATEGORY_EVENT
	out := Render(data)
	assert.Contains(t, out, "appear in person at the event location")

	data.Category = types.CATEGORY_ACTING
	out = Render(data)
	assert.Contains(t, out, "perform the role described in the Deliverables section")
}

func TestRenderUnknownCategoryUsesGeneralClauses(t *testing.T) {
	data := fullData()
	data.Category = types.BookingCategory("circus")
	out := Render(data)
	for _, clause := range generalClauses {
		assert.Contains(t, out, clause)
	}
	assert.Contains(t, out, "Category:      general")
}

func TestRenderClausesAreNumberedFromOne(t *testing.T) {
	out := Render(fullData())
	assert.Contains(t, out, "1. ")
	assert.NotContains(t, out, "0. ")
}

func TestClausesForCoversEveryCategory(t *testing.T) {
	for _, cat := range []types.BookingCategory{
		types.CATEGORY_MODELING,
		types.CATEGORY_ACTING,
		types.CATEGORY_COMMERCIAL,
		types.CATEGORY_EVENT,
	} {
		clauses := ClausesFor(cat)
		assert.NotEmptyf(t, clauses, "no clauses for %s", cat)
	}
	assert.Equal(t, generalClauses, ClausesFor(types.CATEGORY_GENERAL))
}

func TestTalentDisplayNameDegradesGracefully(t *testing.T) {
	data := fullData()
	assert.Equal(t, "Jordy R (Jordan Reyes)", talentDisplayName(data))

	data.TalentStageName = ""
	assert.Equal(t, "Jordan Reyes", talentDisplayName(data))
	assert.Contains(t, Render(data), `Jordan Reyes ("Talent")`)

	data.TalentName = ""
	data.TalentStageName = "Jordy R"
	assert.Equal(t, "Jordy R", talentDisplayName(data))
	assert.Contains(t, Render(data), `Jordy R ("Talent")`)

	data.TalentStageName = ""
	assert.Equal(t, "TBD", talentDisplayName(data))
	assert.Contains(t, Render(data), `TBD ("Talent")`)
}
