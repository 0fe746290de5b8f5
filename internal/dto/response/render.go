package response

type RenderResult struct {
	Token  uint64 `json:"token"`
	Rows   int    `json:"rows"`
	Markup string `json:"markup"`
}
