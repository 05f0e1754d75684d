package advisor

import "strings"

// Canned reply bodies. Country figures are quoted to students verbatim, so
// edits here are user-visible.
var countryInfo = map[Topic]string{
	TopicUSA:        "The United States offers world-class education with over 4,000 universities, including Harvard, MIT, and Stanford. Popular programs include Computer Science, Business, and Engineering. Average tuition ranges from $25,000-$60,000 per year.",
	TopicUK:         "The UK provides excellent education with shorter program durations. Top universities include Oxford, Cambridge, and Imperial College. Tuition ranges from £10,000-£38,000 per year.",
	TopicCanada:     "Canada offers affordable quality education with post-graduation work permits. Top universities include University of Toronto and UBC. Tuition ranges from CAD 20,000-40,000 per year.",
	TopicAustralia:  "Australia combines high-quality education with excellent lifestyle. Universities like Melbourne and ANU are highly ranked. Tuition ranges from AUD 20,000-45,000 per year.",
	TopicGermany:    "Germany offers free or low-cost education at public universities. Strong in engineering and research. Many English-taught programs available.",
	TopicNewZealand: "New Zealand provides safe, welcoming environment with practical learning. Post-study work visa available for up to 3 years.",
}

var countryFollowUp = map[Topic]string{
	TopicUSA:        "Would you like to know more about specific universities or programs in the US?",
	TopicUK:         "I can provide more details about UK universities and application processes.",
	TopicCanada:     "Canada is particularly welcoming to international students with pathways to permanent residency.",
	TopicAustralia:  "Would you like information about specific Australian universities or cities?",
	TopicGermany:    "Germany is an excellent choice for students seeking quality education with minimal financial burden.",
	TopicNewZealand: "New Zealand offers a unique blend of academic excellence and natural beauty.",
}

// Visa sub-intents, resolved by a nested keyword check on the same input.
const (
	visaStudent = "Student visa requirements typically include: acceptance letter, proof of financial support, English language proficiency, and medical examinations."
	visaWork    = "Post-study work visas allow graduates to gain valuable work experience. Duration varies by country: US (1-3 years), Canada (up to 3 years), Australia (2-4 years)."
	visaGeneral = "General visa requirements include passport, photographs, application forms, financial documents, and academic transcripts."
)

const testPrepResponse = "We offer comprehensive test preparation for IELTS, TOEFL, PTE, GRE, and GMAT. Our experienced instructors help students achieve their target scores through personalized coaching and practice materials.\n\nWould you like to know more about our test preparation programs?"

const scholarshipResponse = "There are various scholarship opportunities available:\n\n• Merit-based scholarships from universities\n• Government scholarships (Fulbright, Chevening, etc.)\n• Country-specific scholarships\n• Field-specific scholarships\n\nI can help you identify scholarships that match your profile and academic goals."

const costResponse = "Study abroad costs vary by country and program:\n\n• USA: $25,000-$60,000/year\n• UK: £10,000-£38,000/year\n• Canada: CAD 20,000-40,000/year\n• Australia: AUD 20,000-45,000/year\n• Germany: €0-€3,000/year (public universities)\n\nThis includes tuition fees. Living expenses are additional. Would you like a detailed breakdown for a specific country?"

const applicationResponse = "The application process typically involves:\n\n1. Research and shortlist universities\n2. Prepare required documents (transcripts, SOP, LORs)\n3. Take standardized tests (IELTS/TOEFL, GRE/GMAT)\n4. Submit applications before deadlines\n5. Apply for student visa\n6. Arrange accommodation and travel\n\nI can guide you through each step. Which stage are you currently at?"

const bookingResponse = "I'd be happy to help you book a consultation with our expert counselors! Our consultations include:\n\n• Personalized university recommendations\n• Application strategy and timeline\n• Scholarship guidance\n• Visa assistance\n• Test preparation advice\n\nConsultation fee: 5000 PKR\n\nWould you like to schedule a consultation with our team?"

const greetingResponse = "Hello! Welcome to Edenz Consultant. I'm here to help you with your study abroad journey. I can provide information about:\n\n• Study destinations and universities\n• Visa requirements and processes\n• Test preparation (IELTS, TOEFL, GRE, GMAT)\n• Scholarships and funding\n• Application procedures\n\nWhat would you like to know about?"

const defaultResponse = "I'd be happy to help you with your study abroad journey! What specific information are you looking for?\n\nI can help you with:\n• University selection and applications\n• Visa guidance\n• Test preparation\n• Scholarship information\n• Country-specific requirements\n\nWhat specific aspect of studying abroad interests you most?"

// Lookup resolves the reply body for a topic. The original message text is
// needed for nested sub-intent checks (visa type). Total: every topic,
// including TopicDefault, yields a non-empty string.
func Lookup(topic Topic, text string) string {
	if info, ok := countryInfo[topic]; ok {
		return info + "\n\n" + countryFollowUp[topic]
	}

	switch topic {
	case TopicVisa:
		m := strings.ToLower(text)
		switch {
		case strings.Contains(m, "student"):
			return visaStudent
		case strings.Contains(m, "work"):
			return visaWork
		default:
			return visaGeneral
		}
	case TopicTestPrep:
		return testPrepResponse
	case TopicScholarship:
		return scholarshipResponse
	case TopicCost:
		return costResponse
	case TopicApplication:
		return applicationResponse
	case TopicBooking:
		return bookingResponse
	case TopicGreeting:
		return greetingResponse
	default:
		return defaultResponse
	}
}
