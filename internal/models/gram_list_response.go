package models

type GramListResponse struct {
	Grams []*GramResponse `json:"grams"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Total int64           `json:"total"`
}
