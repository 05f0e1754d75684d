package advisor

import "strings"

// Topic identifies the subject bucket a user message falls into.
type Topic string

const (
	TopicUSA         Topic = "country_usa"
	TopicUK          Topic = "country_uk"
	TopicCanada      Topic = "country_canada"
	TopicAustralia   Topic = "country_australia"
	TopicGermany     Topic = "country_germany"
	TopicNewZealand  Topic = "country_newzealand"
	TopicVisa        Topic = "visa"
	TopicTestPrep    Topic = "test_prep"
	TopicScholarship Topic = "scholarship"
	TopicCost        Topic = "cost"
	TopicApplication Topic = "application"
	TopicBooking     Topic = "booking"
	TopicGreeting    Topic = "greeting"
	TopicDefault     Topic = "default"
)

type rule struct {
	topic    Topic
	keywords []string
}

// rules is evaluated top to bottom; the order is behaviorally significant.
// A message mentioning both a country and a generic subject resolves to the
// country reply.
var rules = []rule{
	{TopicUSA, []string{"usa", "america", "united states"}},
	{TopicUK, []string{"uk", "britain", "england"}},
	{TopicCanada, []string{"canada"}},
	{TopicAustralia, []string{"australia"}},
	{TopicGermany, []string{"germany"}},
	{TopicNewZealand, []string{"new zealand"}},
	{TopicVisa, []string{"visa"}},
	{TopicTestPrep, []string{"ielts", "toefl", "test"}},
	{TopicScholarship, []string{"scholarship", "funding"}},
	{TopicCost, []string{"cost", "fee", "expense"}},
	{TopicApplication, []string{"application", "apply", "admission"}},
	{TopicBooking, []string{"consultation", "appointment", "book", "meet"}},
	{TopicGreeting, []string{"hello", "hi", "hey"}},
}

// Classify returns every topic whose keyword list matches the message, in
// priority order. A pure function of the input text.
func Classify(text string) []Topic {
	m := strings.ToLower(text)
	var hits []Topic
	for _, r := range rules {
		if containsAny(m, r.keywords) {
			hits = append(hits, r.topic)
		}
	}
	return hits
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
