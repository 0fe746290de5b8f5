package request

type MovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Director    string `json:"director" validate:"required,min=1,max=200"`
	ReleaseDate string `json:"releaseDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" validate:"required,oneof=to-watch watching completed"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=to-watch watching completed"`
}

type RatingRequest struct {
	Rating int `json:"rating" validate:"min=0,max=5"`
}
