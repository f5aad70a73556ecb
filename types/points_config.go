package types

const (
	REGISTRATION_POINTS = 10
	FEEDBACK_POINTS     = 5
)

// BadgeRule maps a feedback-count threshold to the badge it unlocks.
type BadgeRule struct {
	Threshold   int
	Name        string
	Description string
}

func GetFeedbackBadgeRules() []BadgeRule {
	return []BadgeRule{
		{Threshold: 5, Name: "Feedback Champion", Description: "Provided feedback for 5 events"},
		{Threshold: 10, Name: "Feedback Legend", Description: "Provided feedback for 10 events"},
	}
}

// BadgesForFeedbackCount returns every badge whose threshold the count has
// reached. Awards are idempotent downstream, so a count that jumps past a
// threshold still earns the badge.
func BadgesForFeedbackCount(count int) []BadgeRule {
	var earned []BadgeRule
	for _, rule := range GetFeedbackBadgeRules() {
		if count >= rule.Threshold {
			earned = append(earned, rule)
		}
	}
	return earned
}
