package models

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

type PlanType string

const (
	PlanDaily  PlanType = "daily"
	PlanWeekly PlanType = "weekly"
)

// ActivityMultipliers are the five accepted activity levels, sedentary to athlete.
var ActivityMultipliers = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

// UserProfile is the ephemeral calculator input. It is never persisted;
// it only lives for the duration of a calorie/plan request.
type UserProfile struct {
	Gender       Gender   `json:"gender"`
	Age          int      `json:"age"`
	WeightKg     float64  `json:"weight_kg"`
	HeightCm     float64  `json:"height_cm"`
	Activity     float64  `json:"activity"`
	Goal         Goal     `json:"goal"`
	Allergies    []string `json:"allergies,omitempty"`
	Intolerances []string `json:"intolerances,omitempty"`
	PlanType     PlanType `json:"plan_type"`
}

// ValidActivity reports whether v is one of the five discrete multipliers.
func ValidActivity(v float64) bool {
	for _, m := range ActivityMultipliers {
		if m == v {
			return true
		}
	}
	return false
}
