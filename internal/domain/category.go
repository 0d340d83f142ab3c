package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CategoryName is one value of the fixed spending/income taxonomy.
// The set is closed; labels that do not match any value resolve to
// CategoryOther.
type CategoryName string

const (
	CategoryHousing        CategoryName = "HOUSING"
	CategoryTransportation CategoryName = "TRANSPORTATION"
	CategoryFoodDining     CategoryName = "FOOD_DINING"
	CategoryEntertainment  CategoryName = "ENTERTAINMENT"
	CategoryShopping       CategoryName = "SHOPPING"
	CategoryUtilities      CategoryName = "UTILITIES"
	CategoryHealthMedical  CategoryName = "HEALTH_MEDICAL"
	CategoryPersonalCare   CategoryName = "PERSONAL_CARE"
	CategoryEducation      CategoryName = "EDUCATION"
	CategoryTravel         CategoryName = "TRAVEL"
	CategoryGiftsDonations CategoryName = "GIFTS_DONATIONS"
	CategoryIncome         CategoryName = "INCOME"
	CategoryInvestments    CategoryName = "INVESTMENTS"
	CategorySavings        CategoryName = "SAVINGS"
	CategoryFeesCharges    CategoryName = "FEES_CHARGES"
	CategoryATMCash        CategoryName = "ATM_CASH"
	CategoryTransfers      CategoryName = "TRANSFERS"
	CategoryInsurance      CategoryName = "INSURANCE"
	CategoryTaxes          CategoryName = "TAXES"
	CategoryOther          CategoryName = "OTHER"
)

// AllCategoryNames lists every taxonomy value in a stable order.
// Used for seeding the categories table and for building model prompts.
var AllCategoryNames = []CategoryName{
	CategoryHousing,
	CategoryTransportation,
	CategoryFoodDining,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryHealthMedical,
	CategoryPersonalCare,
	CategoryEducation,
	CategoryTravel,
	CategoryGiftsDonations,
	CategoryIncome,
	CategoryInvestments,
	CategorySavings,
	CategoryFeesCharges,
	CategoryATMCash,
	CategoryTransfers,
	CategoryInsurance,
	CategoryTaxes,
	CategoryOther,
}

// CategoryLabels maps each taxonomy value to its human-readable label,
// the form shown to the model and stored as the category description.
var CategoryLabels = map[CategoryName]string{
	CategoryHousing:        "Housing",
	CategoryTransportation: "Transportation",
	CategoryFoodDining:     "Food & Dining",
	CategoryEntertainment:  "Entertainment",
	CategoryShopping:       "Shopping",
	CategoryUtilities:      "Utilities",
	CategoryHealthMedical:  "Health & Medical",
	CategoryPersonalCare:   "Personal Care",
	CategoryEducation:      "Education",
	CategoryTravel:         "Travel",
	CategoryGiftsDonations: "Gifts & Donations",
	CategoryIncome:         "Income",
	CategoryInvestments:    "Investments",
	CategorySavings:        "Savings",
	CategoryFeesCharges:    "Fees & Charges",
	CategoryATMCash:        "ATM & Cash",
	CategoryTransfers:      "Transfers",
	CategoryInsurance:      "Insurance",
	CategoryTaxes:          "Taxes",
	CategoryOther:          "Other",
}

var categorySet = func() map[CategoryName]bool {
	m := make(map[CategoryName]bool, len(AllCategoryNames))
	for _, n := range AllCategoryNames {
		m[n] = true
	}
	return m
}()

// Valid reports whether n is a member of the closed taxonomy.
func (n CategoryName) Valid() bool {
	return categorySet[n]
}

// CanonicalCategoryName normalizes a free-text label into taxonomy form:
// uppercase, punctuation dropped, runs of spaces collapsed to single
// underscores. "Food & Dining" becomes "FOOD_DINING". The second return
// value reports whether the normalized form is a taxonomy member.
func CanonicalCategoryName(label string) (CategoryName, bool) {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(label)) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '_', r == '-', r == '/':
			b.WriteRune(' ')
		}
	}
	name := CategoryName(strings.Join(strings.Fields(b.String()), "_"))
	return name, name.Valid()
}

// Category is a row of the shared classification table. Rows are created
// lazily via get-or-create and never duplicated; Name carries a unique
// constraint.
type Category struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name        CategoryName `gorm:"type:varchar(32);not null;uniqueIndex"`
	Description *string      `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Category) TableName() string {
	return "categories"
}
