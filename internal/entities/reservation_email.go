package entities

// ReservationEmailParams are the template parameters for the EmailJS
// reservation templates. The key names are fixed by the templates themselves,
// do not rename them.
type ReservationEmailParams struct {
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	Email         string `json:"email"`
	Date          string `json:"date"`
	Message       string `json:"message"`
	Forfait       string `json:"forfait"`
	EventLink     string `json:"event_link"`
	ICSLink       string `json:"ics_link"`
	EventDate     string `json:"eventDate"`
	EventDateHTML string `json:"eventDateHtml"`
}

// ReservationEmailData feeds the owner notification email.
type ReservationEmailData struct {
	Nom                string
	Prenom             string
	ReservationCode    string
	Forfait            string
	Variant            string
	StartTimeFormatted string
	Status             string
	CurrentYear        int
}
