package entities

type OncologistProfile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Rating         float64  `json:"rating"`
	Reviews        int      `json:"reviews"`
	Distance       string   `json:"distance"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	Availability   []string `json:"availability"`
	Experience     string   `json:"experience"`
	Languages      []string `json:"languages"`
	Insurance      []string `json:"insurance"`
	Image          string   `json:"image"`
	Certifications []string `json:"certifications"`
}
