package models

// Landing — содержимое маркетинговой страницы.
type Landing struct {
	Sections    []string     `json:"sections"`
	AppFeatures []AppFeature `json:"appFeatures"`
	LoginURL    string       `json:"loginUrl"`
	AdminURL    string       `json:"adminUrl"`
}

type AppFeature struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// DefaultLanding — статичное наполнение главной.
func DefaultLanding() Landing {
	return Landing{
		Sections: []string{"hero", "features", "testimonials", "app-download"},
		AppFeatures: []AppFeature{
			{Title: "Fast & Responsive", Text: "Lightning-fast performance"},
			{Title: "Push Notifications", Text: "Never miss a message"},
			{Title: "Easy Photo Upload", Text: "Share moments instantly"},
		},
		LoginURL: "/login",
		AdminURL: "/admin",
	}
}
