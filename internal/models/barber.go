package models

type ProfileStatus string

const (
	ProfilePending  ProfileStatus = "PENDING"
	ProfileApproved ProfileStatus = "APPROVED"
	ProfileRejected ProfileStatus = "REJECTED"
)

// BarberListItem is one card of the public barber listing.
type BarberListItem struct {
	ID            uint    `json:"id"`
	ShopName      string  `json:"shopName"`
	City          string  `json:"city"`
	District      string  `json:"district"`
	ProfileImage  string  `json:"profileImage,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
	StartingPrice string  `json:"startingPrice,omitempty"`
}

type BarberDetail struct {
	ID            uint           `json:"id"`
	UserID        uint           `json:"userId"`
	OwnerName     string         `json:"ownerName"`
	ShopName      string         `json:"shopName"`
	Description   string         `json:"description,omitempty"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	District      string         `json:"district"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	ProfileImage  string         `json:"profileImage,omitempty"`
	AverageRating float64        `json:"averageRating"`
	TotalReviews  int            `json:"totalReviews"`
	Status        ProfileStatus  `json:"status"`
	Services      []Service      `json:"services"`
	WorkingHours  []WorkingHours `json:"workingHours"`
}

// ServiceByID looks up one of the profile services.
func (b *BarberDetail) ServiceByID(id uint) (Service, bool) {
	for _, s := range b.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

type ProfileRequest struct {
	ShopName     string   `json:"shopName" binding:"notblank"`
	Description  string   `json:"description,omitempty"`
	Address      string   `json:"address" binding:"notblank"`
	City         string   `json:"city" binding:"notblank"`
	District     string   `json:"district" binding:"notblank"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
}

type BarberFilter struct {
	City     string
	District string
}
