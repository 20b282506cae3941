package dto

import "github.com/lac-hong-legacy/epsilon_api/model"

type ResourceQuery struct {
	Type   string `query:"type" validate:"omitempty,oneof=lesson quiz video download"`
	Search string `query:"search" validate:"max=100"`
}

func (q ResourceQuery) Validate() error {
	return GetValidator().Struct(q)
}

type ResourceResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Duration    string `json:"duration,omitempty"`
	URL         string `json:"url,omitempty"`
	XPReward    int    `json:"xp_reward"`
	Downloaded  bool   `json:"downloaded"`
}

func NewResourceResponse(r model.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Title:       r.Title,
		Type:        r.Type,
		Description: r.Description,
		Category:    r.Category,
		Duration:    r.Duration,
		URL:         r.URL,
		XPReward:    r.XPReward,
	}
}

type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
	Total     int                `json:"total"`
}

type DownloadResponse struct {
	ResourceID string `json:"resource_id"`
	URL        string `json:"url"`
	ExpiresIn  int64  `json:"expires_in"`
	Recorded   bool   `json:"recorded"`
}
