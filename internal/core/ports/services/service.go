package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality from the
// transport and admin layers.
type ServiceContainer struct {
	Verification VerificationSvcFacade
	Schedule     ScheduleSvcFacade
	Booking      BookingSvcFacade
	LedgerAdmin  LedgerAdminSvcFacade
}
