package advisor

import "strings"

// BookingIntentAction is stamped on the chat envelope when the user looks
// ready to schedule a consultation.
const BookingIntentAction = "booking_intent"

// bookingConfirmedPhrase suppresses the nudge after a completed booking.
const bookingConfirmedPhrase = "booking has been confirmed"

var bookingKeywords = []string{"book", "consult", "appointment", "schedule", "meet", "talk"}

// DetectBookingIntent reports whether any of the last three user turns
// mention scheduling a consultation.
func DetectBookingIntent(userTurns []string) bool {
	if len(userTurns) > 3 {
		userTurns = userTurns[len(userTurns)-3:]
	}
	joined := strings.ToLower(strings.Join(userTurns, " "))
	return containsAny(joined, bookingKeywords)
}

// SuppressBookingNudge reports whether the outgoing reply already confirms
// a booking, in which case the intent flag is withheld.
func SuppressBookingNudge(reply string) bool {
	return strings.Contains(strings.ToLower(reply), bookingConfirmedPhrase)
}
