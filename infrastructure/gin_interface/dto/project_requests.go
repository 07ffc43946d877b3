package dto

import "sculptai-api/domain"

type InitiateProjectRequest struct {
	UserIdea string `json:"userIdea" binding:"required"`
	UserID   string `json:"userId"`
}

type InitiateProjectResponse struct {
	ProjectID  string                   `json:"projectId"`
	Storyboard []domain.StoryboardScene `json:"storyboard"`
}

type GenerateVideoRequest struct {
	Storyboard []domain.StoryboardScene `json:"storyboard" binding:"required,min=1"`
	UserIdea   string                   `json:"userIdea"`
	UserID     string                   `json:"userId"`
}
