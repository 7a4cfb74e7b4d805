package domain

// Classification is the discrete safety tier derived from a score
type Classification string

const (
	ClassificationSafe    Classification = "safe"
	ClassificationCaution Classification = "caution"
	ClassificationAvoid   Classification = "avoid"
)

// SafetyVerdict is the evaluator's output for one (Product, UserProfile) pair.
// It is never persisted; it is recomputed on every request.
type SafetyVerdict struct {
	ProductID        string         `json:"productId"`
	UserID           string         `json:"userId"`
	Score            float64        `json:"score"`
	Classification   Classification `json:"classification"`
	Warnings         []string       `json:"warnings"`
	AllergyMatch     bool           `json:"allergyMatch"`
	MatchedAllergens []string       `json:"matchedAllergens"`
	IsSafe           bool           `json:"isSafe"`
	IssuesFound      int            `json:"issuesFound"`
}

// Alternative is a substitute candidate for a scanned product
type Alternative struct {
	Product          Product       `json:"product"`
	Verdict          SafetyVerdict `json:"verdict"`
	RelevanceScore   float64       `json:"relevanceScore"`
	RelevanceReasons []string      `json:"relevanceReasons,omitempty"`
}
