// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Tier selects how deep and how technical an explanation should be.
//
// WHY A NAMED STRING TYPE?
// Go doesn't have enums. The idiomatic substitute is a named type plus a set
// of constants. The named type makes function signatures self-documenting
// (Explain(ctx, code, lang, Tier) instead of a bare string) while still
// marshalling to/from JSON as a plain string.
type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
)

// Tiers lists every valid tier, in the order the UI presents them.
var Tiers = []Tier{TierBeginner, TierIntermediate, TierAdvanced}

// Valid reports whether t is one of the known tiers.
// The UI renders a closed <select>, so this only rejects direct API callers.
func (t Tier) Valid() bool {
	switch t {
	case TierBeginner, TierIntermediate, TierAdvanced:
		return true
	}
	return false
}

// Languages is the closed set of source-language labels the explainer accepts.
// The label is passed to the model verbatim (and lower-cased for the code
// fence), so the exact spelling matters — "C++" not "cpp".
var Languages = []string{
	"Python", "JavaScript", "Java", "C++", "C", "C#",
	"Go", "Rust", "Ruby", "PHP", "Swift", "Kotlin", "Other",
}

// ValidLanguage reports whether label is in the Languages enumeration.
func ValidLanguage(label string) bool {
	for _, l := range Languages {
		if l == label {
			return true
		}
	}
	return false
}

// Explanation is one completed explain request, as stored in history.
type Explanation struct {
	ID          string    `json:"id"`
	Language    string    `json:"language"`
	Tier        Tier      `json:"tier"`
	Code        string    `json:"code"`
	Explanation string    `json:"explanation"`
	Model       string    `json:"model"` // which remote model produced the text
	CreatedAt   time.Time `json:"createdAt"`
}

// Sample is a canned snippet the page offers as a one-click starting point.
type Sample struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Samples are the three fixed snippets behind the sample buttons.
// Each button overwrites the code box with its literal, verbatim —
// tests depend on these exact strings, so treat them as frozen.
var Samples = []Sample{
	{
		ID:       "python-list-comprehension",
		Name:     "Python List Comprehension",
		Language: "Python",
		Code: `numbers = [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]
even_squares = [x**2 for x in numbers if x % 2 == 0]
print(even_squares)`,
	},
	{
		ID:       "javascript-function",
		Name:     "JavaScript Function",
		Language: "JavaScript",
		Code: `function fibonacci(n) {
    if (n <= 1) return n;
    return fibonacci(n - 1) + fibonacci(n - 2);
}

console.log(fibonacci(10));`,
	},
	{
		ID:       "python-class",
		Name:     "Python Class",
		Language: "Python",
		Code: `class Calculator:
    def __init__(self):
        self.history = []

    def add(self, a, b):
        result = a + b
        self.history.append(f"{a} + {b} = {result}")
        return result

calc = Calculator()
print(calc.add(5, 3))`,
	},
}

// SampleByID returns the sample with the given ID, or nil if unknown.
func SampleByID(id string) *Sample {
	for i := range Samples {
		if Samples[i].ID == id {
			return &Samples[i]
		}
	}
	return nil
}
