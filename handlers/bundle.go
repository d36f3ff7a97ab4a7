package handlers

// HandlerBundle groups the wired handlers for route registration.
type HandlerBundle struct {
	Calendar *CalendarHandler
	Booking  *BookingHandler
	Admin    *AdminHandler
}
