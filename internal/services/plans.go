package services

// Plan is a purchasable credit package shown on the pricing page.
type Plan struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Credits int     `json:"credits"`
}

var plans = []Plan{
	{Name: "Free", Price: 0, Credits: 20},
	{Name: "Pro Package", Price: 40, Credits: 120},
	{Name: "Premium Package", Price: 199, Credits: 2000},
}

// Plans returns the purchasable credit packages.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByName returns the catalog entry for name, if any.
func PlanByName(name string) (Plan, bool) {
	for _, p := range plans {
		if p.Name == name {
			return p, true
		}
	}
	return Plan{}, false
}
