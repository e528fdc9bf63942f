package models

// Plan describes a purchasable credit bundle. Amount is in major currency
// units; the gateway receives it multiplied by 100.
type Plan struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Credits int    `json:"credits"`
	Amount  int    `json:"amount"`
}

// Plans is the static catalog of purchasable bundles.
var Plans = map[string]Plan{
	"Basic":    {ID: "Basic", Name: "Basic Plan", Credits: 100, Amount: 10},
	"Advanced": {ID: "Advanced", Name: "Advanced Plan", Credits: 500, Amount: 50},
	"Business": {ID: "Business", Name: "Business Plan", Credits: 5000, Amount: 250},
}

// PlanByID looks up a plan in the catalog.
func PlanByID(id string) (Plan, bool) {
	plan, ok := Plans[id]
	return plan, ok
}
