package views

// Language is an entry in the header language selector.
type Language struct {
	Code string
	Name string
}

// Languages lists the selector options. The selector is inert: no handler
// reads the choice and every page renders in English.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
}
