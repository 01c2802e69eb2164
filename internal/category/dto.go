package category

type CategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
