package pipeline

type Category string

const (
	CategoryActivity   Category = "activity"
	CategoryRestaurant Category = "restaurant"
	CategoryLodging    Category = "lodging"
	CategoryTransport  Category = "transport"
)

// CandidatePOI is one point of interest returned by a provider. It only lives
// for the duration of a single generation run and is never persisted.
type CandidatePOI struct {
	ProviderID   string
	Name         string
	Category     Category
	City         string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Cost         float64
	Rating       float64
	OpeningHours string
	Tags         []string
	Description  string
	Source       string
}

func (c CandidatePOI) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// SeenSet accumulates the candidates accepted so far in one run. It is owned
// by the caller and threaded through every stage that can introduce
// duplicates, so concurrent runs can never cross-contaminate.
type SeenSet struct {
	items []CandidatePOI
}

func NewSeenSet() *SeenSet {
	return &SeenSet{}
}

func (s *SeenSet) Add(c CandidatePOI) {
	s.items = append(s.items, c)
}

func (s *SeenSet) Items() []CandidatePOI {
	return s.items
}

func (s *SeenSet) Len() int {
	return len(s.items)
}
