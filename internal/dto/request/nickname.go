package request

type GenerateNicknamesRequest struct {
	Prompt string `json:"prompt" validate:"required,max=500"`
}
