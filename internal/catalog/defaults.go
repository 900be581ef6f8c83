package catalog

// Embedded reference data used when no catalog database is configured.
// Product names follow the supplier - brand expression convention the
// brand rollups depend on.

var defaultProducts = map[string]PackSpec{
	"William Grant - Glenfiddich 12yr":       {PackSize: "6x750", PackBottles: 6, CaseEquivalentFactor: 0.5},
	"William Grant - Glenfiddich 15yr":       {PackSize: "6x750", PackBottles: 6, CaseEquivalentFactor: 0.5},
	"William Grant - Balvenie DoubleWood":    {PackSize: "6x750", PackBottles: 6, CaseEquivalentFactor: 0.5},
	"William Grant - Hendricks Gin":          {PackSize: "6x750", PackBottles: 6, CaseEquivalentFactor: 0.5},
	"William Grant - Tullamore DEW Original": {PackSize: "12x750", PackBottles: 12, CaseEquivalentFactor: 1.0},
	"William Grant - Monkey Shoulder":        {PackSize: "12x750", PackBottles: 12, CaseEquivalentFactor: 1.0},
	"William Grant - Milagro Silver":         {PackSize: "12x750", PackBottles: 12, CaseEquivalentFactor: 1.0},
	"William Grant - Reyka Vodka":            {PackSize: "6x1750", PackBottles: 6, CaseEquivalentFactor: 1.1667},
	"William Grant - Sailor Jerry":           {PackSize: "6x1750", PackBottles: 6, CaseEquivalentFactor: 1.1667},
	"William Grant - Drambuie":               {PackSize: "12x750", PackBottles: 12, CaseEquivalentFactor: 1.0},
}

var defaultMarkets = []string{
	"New York",
	"New Jersey",
	"Connecticut",
	"Massachusetts",
	"Rhode Island",
}

var defaultAccounts = []string{
	"Total Wine & More",
	"BevMax",
	"Stew Leonard's Wines",
	"Wegmans",
	"ShopRite Liquors",
	"Yankee Spirits",
}

// NewStatic returns the catalog backed by the embedded tables.
func NewStatic() *Catalog {
	products := make(map[string]PackSpec, len(defaultProducts))
	for name, spec := range defaultProducts {
		products[name] = spec
	}
	return New(products, defaultMarkets, defaultAccounts)
}
