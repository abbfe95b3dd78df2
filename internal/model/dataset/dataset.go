package dataset

// AfroTrack is one row of the bundled Afrobeats streaming dataset.
type AfroTrack struct {
	Artist       string  `json:"artist"`
	Title        string  `json:"title"`
	Genre        string  `json:"genre"`
	Streams      int64   `json:"streams"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
	Tempo        float64 `json:"tempo"`
	Year         int     `json:"year"`
}

// YouTubeTrack is one row of the bundled YouTube performance dataset.
type YouTubeTrack struct {
	Artist   string `json:"artist"`
	Title    string `json:"title"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Year     int    `json:"year"`
}

// Concert is one row of the bundled live-show dataset.
type Concert struct {
	Artist     string  `json:"artist"`
	City       string  `json:"city"`
	Venue      string  `json:"venue"`
	Date       string  `json:"date"`
	Attendance int     `json:"attendance"`
	Revenue    float64 `json:"revenue"`
}

// BusinessSale is one row of the bundled merchandise/business dataset.
type BusinessSale struct {
	Category string  `json:"category"`
	Item     string  `json:"item"`
	Units    int     `json:"units"`
	Revenue  float64 `json:"revenue"`
	Quarter  string  `json:"quarter"`
}

// Movie is one row of the bundled film dataset.
type Movie struct {
	Title   string `json:"title"`
	Runtime int    `json:"runtime"`
	Year    int    `json:"year"`
	Genre   string `json:"genre"`
}

// Stats aggregates the loaded collections for the quick-stats surface.
type Stats struct {
	AfroTrackCount     int     `json:"afroTrackCount"`
	YouTubeTrackCount  int     `json:"youtubeTrackCount"`
	ConcertCount       int     `json:"concertCount"`
	BusinessSaleCount  int     `json:"businessSaleCount"`
	MovieCount         int     `json:"movieCount"`
	TotalStreams       int64   `json:"totalStreams"`
	TotalViews         int64   `json:"totalViews"`
	AvgEnergy          float64 `json:"avgEnergy"`
	AvgDanceability    float64 `json:"avgDanceability"`
	AvgTempo           float64 `json:"avgTempo"`
	TotalAttendance    int     `json:"totalAttendance"`
	TotalGateRevenue   float64 `json:"totalGateRevenue"`
	AvgMovieRuntime    float64 `json:"avgMovieRuntime"`
	TopSalesCategory   string  `json:"topSalesCategory"`
	TopSalesRevenue    float64 `json:"topSalesRevenue"`
	TopStreamedArtist  string  `json:"topStreamedArtist"`
	MostViewedYouTuber string  `json:"mostViewedArtist"`
}
