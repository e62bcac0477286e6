package dto

type MediaRequest struct {
	UserId    string `validate:"required"`
	MediaType string `validate:"required"`
	Filename  string `validate:"required"`
}
