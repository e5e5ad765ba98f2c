package training

type CreateTrainingRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	Location    string  `json:"location" binding:"required,max=255"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"gte=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=active inactive completed"`
}

type UpdateTrainingRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	Location    string  `json:"location" binding:"required,max=255"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"gte=0"`
	Status      string  `json:"status" binding:"omitempty,oneof=active inactive completed"`
}

type TrainingResponse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Location      string  `json:"location"`
	Capacity      int     `json:"capacity"`
	EnrolledCount int     `json:"enrolled_count"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`

	IsFull         bool `json:"is_full"`
	AvailableSpots int  `json:"available_spots"`
}
