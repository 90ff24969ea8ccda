package domain

// Assessment is the structured hiring evaluation generated after the
// final question has been answered.
type Assessment struct {
	ScorePercent          int      `json:"candidate_score_percent"`
	HiringRecommendation  string   `json:"hiring_recommendation"`
	Strengths             []string `json:"strengths"`
	ImprovementAreas      []string `json:"improvement_areas"`
	NextSteps             string   `json:"next_steps"`
	AnswerQualityAnalysis string   `json:"answer_quality_analysis"`
}
