package models

// ContentInterests is the fixed set of tags offered by the form.
var ContentInterests = []string{
	"Tech & Gadgets", "AI / ML", "Startup", "Entrepreneurship", "Marketing",
	"Digital Marketing", "Social Media Tips", "Productivity", "Career Advice",
	"Interview Tips", "Finance & Personal Finance", "Investing", "Cryptocurrency",
	"Health & Wellness", "Fitness", "Yoga", "Meditation", "Nutrition",
	"Food & Recipes", "Travel", "Photography", "Education", "Exam Tips",
	"Coding & Tutorials", "Programming (Python)", "Web Development",
	"Android Development", "Cloud Computing", "Cybersecurity",
	"Design & UX", "Art & Illustration", "Music", "Movies & TV",
	"Books & Reading", "Science & Space", "Environment & Sustainability",
	"Sports", "Fashion", "Beauty", "Parenting", "Lifestyle",
	"Business News", "E-commerce", "Real Estate", "Automotive",
	"Gaming", "Memes / Humor", "Motivation / Self-help",
}

var knownInterests = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ContentInterests))
	for _, i := range ContentInterests {
		m[i] = struct{}{}
	}
	return m
}()

// IsKnownInterest reports whether tag belongs to ContentInterests.
func IsKnownInterest(tag string) bool {
	_, ok := knownInterests[tag]
	return ok
}
