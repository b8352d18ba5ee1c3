package memes

import "github.com/google/uuid"

// MemeResponse is the outward-facing list representation of a meme.
type MemeResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

func toResponse(m Meme) MemeResponse {
	return MemeResponse{ID: m.ID, Title: m.Title}
}

// OkResponse is the success body returned by mutating endpoints.
type OkResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func okResponse(message string) OkResponse {
	return OkResponse{Status: "Ok", Message: message}
}
