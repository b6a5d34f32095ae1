package entities

// BookingEmailData feeds the HTML notification template.
type BookingEmailData struct {
	UserName    string
	BookingID   int
	CarName     string
	StartDate   string
	EndDate     string
	TotalPrice  float64
	Status      string
	CurrentYear int
}
