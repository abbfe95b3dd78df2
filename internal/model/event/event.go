package event

// Event is a normalized record scraped from an external listing page.
type Event struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Venue  string `json:"venue"`
	City   string `json:"city"`
	Price  string `json:"price"`
	Free   bool   `json:"free"`
	URL    string `json:"url"`
	Source string `json:"source"`
}
