package dataset

// Column names the dashboard depends on.
const (
	ColTitle  = "title"
	ColYear   = "year"
	ColGenre  = "genre"
	ColRating = "rating"
	ColVotes  = "votes"
)

// RequiredColumns lists the columns every dataset must carry, in check order.
var RequiredColumns = []string{ColTitle, ColYear, ColGenre, ColRating, ColVotes}

// Title is one row of the dataset. Rating is NaN when the source cell is
// empty; an empty votes cell loads as 0 with VotesMissing set, so rankings
// still see a number while statistics skip it.
type Title struct {
	Title        string  `json:"title"`
	Year         int     `json:"year"`
	Genre        string  `json:"genre"`
	Rating       float64 `json:"rating"`
	Votes        int64   `json:"votes"`
	VotesMissing bool    `json:"-"`
}
