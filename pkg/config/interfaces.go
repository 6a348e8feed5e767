package config

// Validator is implemented by configs that check their own fields once loaded.
type Validator interface {
	Validate() error
}
