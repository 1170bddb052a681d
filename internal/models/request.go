package models

type ScreenResponse struct {
	Results []CandidateScreeningResult `json:"results"`
}

type CompareRequest struct {
	JobDescription string                     `json:"job_description"`
	Shortlist      []CandidateScreeningResult `json:"shortlist" validate:"min=2,max=5,dive"`
}

type CompareResponse struct {
	Analysis *ComparisonAnalysis `json:"analysis"`
}

type ExportRequest struct {
	Results []CandidateScreeningResult `json:"results" validate:"required,min=1,dive"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
