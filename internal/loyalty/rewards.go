package loyalty

// Reward is something a shopper can spend points on.
type Reward struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
}

// RewardStatus pairs a reward with what the current balance allows.
type RewardStatus struct {
	Reward
	Redeemable   bool `json:"redeemable"`
	PointsNeeded int  `json:"points_needed"`
}

// DefaultRewards is the café's reward catalog, cheapest first.
func DefaultRewards() []Reward {
	return []Reward{
		{
			ID:             "free-espresso",
			Name:           "Free Espresso",
			Description:    "Any size espresso on the house.",
			PointsRequired: 50,
		},
		{
			ID:             "pastry",
			Name:           "Free Pastry",
			Description:    "Pick any pastry from the counter with your next drink.",
			PointsRequired: 75,
		},
		{
			ID:             "free-latte",
			Name:           "Free Latte",
			Description:    "A latte with your choice of milk and flavor.",
			PointsRequired: 100,
		},
		{
			ID:             "size-upgrade",
			Name:           "Free Size Upgrade",
			Description:    "Go large on any drink for a week.",
			PointsRequired: 150,
		},
		{
			ID:             "coffee-beans",
			Name:           "Bag of House Beans",
			Description:    "A 250g bag of our house roast, whole bean or ground.",
			PointsRequired: 300,
		},
	}
}
