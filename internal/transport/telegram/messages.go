package telegram

// User-visible strings. The bot serves a bilingual audience, so a few of
// these carry Amharic alongside English, matching the command descriptions
// registered with BotFather.
const (
	msgHelp = "Welcome! Verify your Telebirr payment here.\n" +
		"/booking - በክፍያ ለማረጋገጥ ከዚህ ይጀምሩ። | Booking for pay and verify\n" +
		"/ticket - ትኬት / ቀጠሮ ማስያዣ | Generate a ticket\n" +
		"/verify <code> - የቴሌ ብር ክፍያ ለማረጋገጥ | Verify your Telebirr payment\n" +
		"Send a screenshot of your confirmation and I will read it for you."

	msgVerifyUsage = "Usage: /verify <transaction code>\n" +
		"The code is the 10-character transaction number from your Telebirr confirmation."

	msgOnlyPrivateVerification = "Verification works only in a private chat with the bot. Send me a private message."

	msgOnlyPrivateBooking = "Booking works only in private chat with bot. Send me a private message."

	// First /verify for a code: recorded, operator not yet checked.
	msgVerificationRecorded = "Your verification request has been recorded. " +
		"Send /verify again with the same code once your payment has been confirmed."

	// Repeat /verify, no operator confirmation yet.
	msgVerificationPending = "Your payment has not been confirmed yet. " +
		"Please wait for the operator or contact support."

	msgPaymentVerified = "ክፍያዎ ተረጋግጧል | Your payment is verified."

	msgScanQR = "Scan this QR code to verify payment."

	msgPaidCodeStored = "Payment confirmed and the user will be notified on their next /verify."

	msgPaidCodeExists = "This transaction code is already recorded."

	msgScheduleExists = "A schedule entry with these details already exists."

	msgScheduleUpdated = "Schedule updated with"

	msgNoEntriesFound = "No schedule entries found matching"

	msgRemovedEntries = "Removed schedule entries matching"

	msgErrorLoadingData = "Could not load schedule data. Please try again later."

	msgNoScheduleEntries = "No events are scheduled yet."

	msgDataResetRemind = "This will delete all stored ledger data for today. Are you sure?"

	msgDataResetDone = "All ledger data has been deleted."

	msgExportCaption = "Current ledger export: "

	msgBookingInfo = "ትኬት ለማስያዝ ከታች ያለውን ይጫኑ | Tap below to open the booking app."

	msgBookingRequestInfo = "ቦታ በማስያዝ ላይ | Preparing your booking..."

	msgCompletePaymentInfo = "Please complete your Telebirr payment within 10 minutes " +
		"and send /verify <transaction code> to confirm."

	msgUnavailable = "No data available right now. Please try again later."

	msgCompletePaymentButton = "ክፍያ ይፈጽሙ | Complete Payment"

	msgOpenWebAppButton = "ትኬት ያስይዙ | Book Now"

	msgConfirmResetButton = "አረጋግጥ Confirm"

	// ticketFormat is parsed back by the book_show callback; the
	// "event:"/"Day:"/"Time:" markers and "|" separators are load-bearing.
	ticketFormat = "ተሳታፊ | event: %s\nቀን | Day: %s\nሰአት | Time: %s"
)
