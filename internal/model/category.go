package model

// Category is a named label from the fixed catalog, with a display icon.
type Category struct {
	Name string
	Icon string
}

// ExpenseCategories is the fixed expense catalog.
var ExpenseCategories = []Category{
	{Name: "Food", Icon: "restaurant"},
	{Name: "Transport", Icon: "car"},
	{Name: "Shopping", Icon: "cart"},
	{Name: "Household", Icon: "home"},
	{Name: "Entertainment", Icon: "film"},
	{Name: "Health", Icon: "medkit"},
	{Name: "Education", Icon: "book"},
	{Name: "Utilities", Icon: "bulb"},
	{Name: "Clothing", Icon: "shirt"},
	{Name: "Beauty", Icon: "sparkles"},
	{Name: "Pets", Icon: "paw"},
	{Name: "Sports", Icon: "football"},
	{Name: "Gifts", Icon: "gift"},
	{Name: "Other", Icon: "ellipsis"},
}

// IncomeCategories is the fixed income catalog.
var IncomeCategories = []Category{
	{Name: "Salary", Icon: "wallet"},
	{Name: "Side Income", Icon: "cash"},
	{Name: "Gifts", Icon: "gift"},
	{Name: "Investment", Icon: "trending-up"},
	{Name: "Bonus", Icon: "trophy"},
	{Name: "Refund", Icon: "return"},
	{Name: "Interest", Icon: "trending-up"},
	{Name: "Sales", Icon: "storefront"},
	{Name: "Other", Icon: "ellipsis"},
}

// CategoriesFor returns the catalog for a transaction type.
// Unknown types get the expense catalog.
func CategoriesFor(txType string) []Category {
	if txType == TypeIncome {
		return IncomeCategories
	}
	return ExpenseCategories
}

// IconFor resolves the display icon for a category name, searching both
// catalogs. Unknown categories get the fallback icon.
func IconFor(name string) string {
	for _, c := range ExpenseCategories {
		if c.Name == name {
			return c.Icon
		}
	}
	for _, c := range IncomeCategories {
		if c.Name == name {
			return c.Icon
		}
	}
	return "ellipsis"
}
