package events

// eventForm is bound from multipart forms. Dates use the HTML date input
// format (YYYY-MM-DD).
type eventForm struct {
	Title        string  `form:"title"`
	Description  string  `form:"description"`
	Location     string  `form:"location"`
	DateRange    string  `form:"date_range"`
	OpeningHours *string `form:"opening_hours"`
	TicketInfo   *string `form:"ticket_info"`
	Status       string  `form:"status"`
	StartDate    string  `form:"start_date"`
	EndDate      string  `form:"end_date"`
}
