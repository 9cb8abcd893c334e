package response

type NicknamesResponse struct {
	Suggestions []string `json:"suggestions"`
}
