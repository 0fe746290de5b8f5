package request

// ViewRequest carries the query of one render pass.
type ViewRequest struct {
	Filter string
	Mode   string
	Field  string
	Sort   string
}
